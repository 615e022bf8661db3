package liveness

import (
	"strings"
	"testing"

	"github.com/richxcame/kyc-nova/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const framePrefix = "data:image/jpeg;base64,"

// imageFrame builds an encoded frame of exactly length bytes
func imageFrame(length int) Frame {
	return Frame{Data: framePrefix + strings.Repeat("A", length-len(framePrefix))}
}

func framesOf(n int, f Frame) []Frame {
	frames := make([]Frame, n)
	for i := range frames {
		frames[i] = f
	}
	return frames
}

func TestDistribution_Dominant(t *testing.T) {
	tests := []struct {
		name string
		dist Distribution
		want Scenario
	}{
		{"normal wins", Distribution{Normal: 3, Photo: 1, Blocked: 1}, ScenarioNormal},
		{"photo wins", Distribution{Normal: 1, Photo: 3}, ScenarioPhoto},
		{"blocked wins", Distribution{Blocked: 4, Photo: 1}, ScenarioBlocked},
		{"blocked beats normal on tie", Distribution{Normal: 2, Blocked: 2}, ScenarioBlocked},
		{"photo beats blocked on tie", Distribution{Blocked: 2, Photo: 2}, ScenarioPhoto},
		{"photo beats normal on tie", Distribution{Normal: 3, Photo: 3, Blocked: 1}, ScenarioPhoto},
		{"three way tie", Distribution{Normal: 1, Photo: 1, Blocked: 1}, ScenarioPhoto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.dist.Dominant()
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := Distribution{}.Dominant()
	assert.False(t, ok)
}

func TestTally(t *testing.T) {
	frames := []Frame{
		{Scenario: ScenarioNormal},
		{Scenario: ScenarioPhoto},
		{Scenario: ScenarioNormal},
		{Scenario: ScenarioBlocked},
	}

	dist := Tally(frames)
	assert.Equal(t, Distribution{Normal: 2, Photo: 1, Blocked: 1}, dist)
	assert.Equal(t, len(frames), dist.Total())
}

func TestFrameClassifier_Classify(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		draw  float64
		want  Scenario
	}{
		{"empty", Frame{}, 0.99, ScenarioBlocked},
		{"blank canvas", Frame{Data: "data:,"}, 0.99, ScenarioBlocked},
		{"not an image", Frame{Data: strings.Repeat("A", 10000)}, 0.99, ScenarioBlocked},
		{"too short", imageFrame(1999), 0.99, ScenarioBlocked},
		{"large photo", imageFrame(60000), 0.69, ScenarioPhoto},
		{"large live", imageFrame(60000), 0.7, ScenarioNormal},
		{"small photo", imageFrame(3000), 0.19, ScenarioPhoto},
		{"small live", imageFrame(3000), 0.25, ScenarioNormal},
		{"medium photo", imageFrame(20000), 0.29, ScenarioPhoto},
		{"medium live", imageFrame(20000), 0.5, ScenarioNormal},
		{"label ignored", Frame{Data: framePrefix + "AAAA", Scenario: ScenarioNormal}, 0.99, ScenarioBlocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFrameClassifier(scoring.Fixed{Value: tt.draw})
			assert.Equal(t, tt.want, c.Classify(tt.frame))
		})
	}
}

func TestFrameClassifier_ClassifyAllRelabelsFrames(t *testing.T) {
	c := NewFrameClassifier(scoring.Fixed{Value: 0.99})
	frames := []Frame{
		{Data: "", Scenario: ScenarioNormal},
		{Data: "data:,", Scenario: ScenarioNormal},
		{Data: framePrefix + "AAAA", Scenario: ScenarioNormal},
		imageFrame(20000),
	}

	tagged := c.ClassifyAll(frames)
	assert.Equal(t, ScenarioBlocked, tagged[0].Scenario)
	assert.Equal(t, ScenarioBlocked, tagged[1].Scenario)
	assert.Equal(t, ScenarioBlocked, tagged[2].Scenario)
	assert.Equal(t, ScenarioNormal, tagged[3].Scenario)
	assert.Empty(t, frames[3].Scenario, "input is not mutated")
}

func TestAnalyzer_ZeroFrames(t *testing.T) {
	for _, external := range []bool{true, false} {
		result := NewAnalyzer(scoring.Midpoint{}, external).Analyze(nil)

		assert.False(t, result.Success)
		assert.NotEmpty(t, result.Reason)
		assert.Equal(t, 0, result.Distribution.Total())
		assert.Equal(t, RecommendRejected, result.Recommendation)
	}
}

func TestAnalyzer_FallbackMode(t *testing.T) {
	frames := framesOf(6, Frame{Data: ""})
	result := NewAnalyzer(scoring.NewRandom(11), false).Analyze(frames)

	assert.True(t, result.Success)
	assert.GreaterOrEqual(t, result.Confidence, 90.0)
	assert.LessOrEqual(t, result.Confidence, 98.0)
	assert.Equal(t, ScenarioNormal, result.Scenario)
	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, RiskLow, result.Risk.OverallRisk)
	assert.Equal(t, len(frames), result.Distribution.Total())
	assert.True(t, result.IsFallback())
}

func TestAnalyzer_ScenarioVerdicts(t *testing.T) {
	tests := []struct {
		name           string
		frames         []Frame
		draw           float64
		wantScenario   Scenario
		wantSuccess    bool
		wantRisk       RiskLevel
		wantConfidence scoring.Range
	}{
		{"blocked", framesOf(5, Frame{Data: "data:,"}), 0.5, ScenarioBlocked, false, RiskCritical, BlockedRange},
		{"photo", framesOf(5, imageFrame(60000)), 0, ScenarioPhoto, false, RiskHigh, PhotoRange},
		{"normal", framesOf(5, imageFrame(20000)), 0.99, ScenarioNormal, true, RiskLow, NormalRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewAnalyzer(scoring.Fixed{Value: tt.draw}, true).Analyze(tt.frames)

			assert.Equal(t, tt.wantScenario, result.Scenario)
			assert.Equal(t, tt.wantSuccess, result.Success)
			assert.Equal(t, tt.wantRisk, result.Risk.OverallRisk)
			assert.True(t, tt.wantConfidence.Contains(result.Confidence), "confidence %v", result.Confidence)
			assert.Equal(t, SourceScenarioAnalysis, result.Source)
			assert.Equal(t, len(tt.frames), result.Distribution.Total())
			assert.Equal(t, tt.wantScenario == ScenarioNormal, result.Signals.BlinkDetection)
			assert.True(t, result.Signals.MultipleAngles)
		})
	}
}

func TestAnalyzer_IgnoresClientLabels(t *testing.T) {
	frames := []Frame{
		{Data: "", Scenario: ScenarioNormal},
		{Data: "data:,", Scenario: ScenarioNormal},
	}

	result := NewAnalyzer(scoring.Midpoint{}, true).Analyze(frames)
	assert.False(t, result.Success)
	assert.Equal(t, ScenarioBlocked, result.Scenario)
	assert.Equal(t, RiskCritical, result.Risk.OverallRisk)
	assert.Equal(t, Distribution{Blocked: 2}, result.Distribution)
}

func TestAnalyzer_TieFailsLiveness(t *testing.T) {
	frames := []Frame{imageFrame(20000), imageFrame(20000), {Data: "data:,"}, {Data: ""}}

	result := NewAnalyzer(scoring.Fixed{Value: 0.99}, true).Analyze(frames)
	assert.Equal(t, Distribution{Normal: 2, Blocked: 2}, result.Distribution)
	assert.Equal(t, ScenarioBlocked, result.Scenario)
	assert.False(t, result.Success)
	assert.Equal(t, RiskCritical, result.Risk.OverallRisk)
	assert.Equal(t, RecommendRejected, result.Recommendation)
}

func TestAnalyzer_SizeBandsDriveVerdict(t *testing.T) {
	tests := []struct {
		name         string
		draws        []float64
		wantDist     Distribution
		wantScenario Scenario
		wantSuccess  bool
	}{
		// draws land just under each band's photo chance: 0.7, 0.3, 0.2
		{"every band flags photo", []float64{0.65, 0.25, 0.15}, Distribution{Photo: 3}, ScenarioPhoto, false},
		// only the large frame clears its band
		{"large frame alone flags photo", []float64{0.65, 0.35, 0.25}, Distribution{Normal: 2, Photo: 1}, ScenarioNormal, true},
		{"nothing flagged", []float64{0.75, 0.35, 0.25}, Distribution{Normal: 3}, ScenarioNormal, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames := []Frame{imageFrame(60000), imageFrame(20000), imageFrame(3000)}
			result := NewAnalyzer(scoring.NewSequence(tt.draws...), true).Analyze(frames)

			assert.Equal(t, tt.wantDist, result.Distribution)
			assert.Equal(t, tt.wantScenario, result.Scenario)
			assert.Equal(t, tt.wantSuccess, result.Success)
			assert.Equal(t, SourceScenarioAnalysis, result.Source)
		})
	}
}

func TestAnalyzer_VerdictUsesGivenLabels(t *testing.T) {
	frames := []Frame{
		{Scenario: ScenarioPhoto},
		{Scenario: ScenarioPhoto},
		{Scenario: ScenarioNormal},
	}

	result := NewAnalyzer(scoring.Midpoint{}, true).Verdict(frames)
	assert.Equal(t, ScenarioPhoto, result.Scenario)
	assert.Equal(t, Distribution{Normal: 1, Photo: 2}, result.Distribution)
	assert.False(t, result.Signals.MultipleAngles)

	unlabelled := NewAnalyzer(scoring.Midpoint{}, true).Verdict([]Frame{{}, {Scenario: ScenarioNormal}})
	assert.Equal(t, Distribution{Normal: 1, Blocked: 1}, unlabelled.Distribution)
	assert.Equal(t, ScenarioBlocked, unlabelled.Scenario)

	assert.Equal(t, ReasonNoFrames, NewAnalyzer(scoring.Midpoint{}, true).Verdict(nil).Reason)
	assert.Equal(t, SourceFallback, NewAnalyzer(scoring.Midpoint{}, false).Verdict(frames).Source)
}

func TestAnalyzer_Invariants(t *testing.T) {
	scorer := scoring.NewRandom(99)
	sizes := []int{0, 1000, 3000, 20000, 60000}

	for run := 0; run < 200; run++ {
		n := 1 + run%9
		frames := make([]Frame, n)
		for i := range frames {
			size := sizes[(run+i)%len(sizes)]
			if size == 0 {
				frames[i] = Frame{Data: "data:,"}
				continue
			}
			frames[i] = imageFrame(size)
		}

		for _, external := range []bool{true, false} {
			result := NewAnalyzer(scorer, external).Analyze(frames)

			require.True(t, scoring.Percent.Contains(result.Confidence))
			require.Equal(t, n, result.Distribution.Total())
			if result.Scenario == ScenarioBlocked {
				require.False(t, result.Success)
				require.Equal(t, RiskCritical, result.Risk.OverallRisk)
			}
			if !external {
				require.True(t, result.Success)
				require.GreaterOrEqual(t, result.Confidence, 90.0)
			}
		}
	}
}
