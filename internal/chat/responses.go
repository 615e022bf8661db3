package chat

var responses = map[Intent][]string{
	IntentSecurity: {
		"Your data is protected with bank-level encryption and processed locally on your device. We never store your biometric data permanently.",
		"Security is our top priority. All processing happens on-device with zero-trust architecture and GDPR compliance.",
		"Your personal information is encrypted end-to-end and we follow strict privacy protocols throughout the verification process.",
	},
	IntentProcess: {
		"The process involves three simple steps: document upload, face verification, and trust assessment. Each step is guided by AI.",
		"I'll guide you through document scanning, biometric verification, and final approval - typically taking under 5 minutes total.",
		"Our AI analyzes your document authenticity, matches your face to the ID, and provides an instant trust score for verification.",
	},
	IntentTime: {
		"Most users complete verification in under 4 minutes. The AI processing is nearly instantaneous.",
		"Typical completion time is 3-5 minutes, with real-time AI analysis providing immediate feedback at each step.",
		"The entire process is designed to be completed in under 10 minutes, with most users finishing much faster.",
	},
	IntentHelp: {
		"I'm here to help! What specific part of the verification process would you like assistance with?",
		"Happy to assist you. Are you having trouble with document upload, camera access, or have questions about the process?",
		"Let me know what you need help with - I can guide you through any step of the verification process.",
	},
	IntentConcern: {
		"I understand your concerns. This verification process is designed to be transparent, secure, and respectful of your privacy.",
		"Your concerns are valid and important. Let me explain how we protect your data and ensure a safe verification experience.",
		"I'm here to address any worries you might have. What specific aspect would you like me to explain further?",
	},
	IntentGeneral: {
		"I understand. Let me help you with that.",
		"Thanks for your question. I'm here to guide you through the verification process.",
		"I'm happy to assist you. What would you like to know more about?",
	},
}
