// Package main provides kycctl, an offline companion to the KYC API.
package main

func main() {
	Execute()
}
