package bundles

import "fmt"

// Stage identifies one step of the commit loop.
type Stage int

const (
	StageDetailFetch Stage = iota
	StageNaming
	StageImage
	StageUpload
	StageCreate
)

var stageNames = map[Stage]string{
	StageDetailFetch: "product detail fetch",
	StageNaming:      "name generation",
	StageImage:       "image generation",
	StageUpload:      "logo upload",
	StageCreate:      "bundle creation",
}

func (s Stage) String() string { return stageNames[s] }

// FailurePolicy says what a stage failure does to the batch.
type FailurePolicy int

const (
	// PolicyRecord appends the failure to the result and moves on to the
	// next candidate bundle.
	PolicyRecord FailurePolicy = iota
	// PolicyAbort stops the whole batch immediately.
	PolicyAbort
)

// commitPolicies makes the fatal-vs-recoverable asymmetry explicit. Image
// generation is the expensive step and batch-wide consistent branding is
// worth more than partial completion, so its failure aborts the batch.
// Everything else is treated as a per-item data or transient issue and is
// recorded without stopping the loop.
var commitPolicies = map[Stage]FailurePolicy{
	StageDetailFetch: PolicyRecord,
	StageNaming:      PolicyRecord,
	StageImage:       PolicyAbort,
	StageUpload:      PolicyRecord,
	StageCreate:      PolicyRecord,
}

// PolicyFor returns the failure policy for a commit stage.
func PolicyFor(stage Stage) FailurePolicy {
	return commitPolicies[stage]
}

// FatalStageError aborts a commit batch. The cause's message is forwarded
// to the client verbatim.
type FatalStageError struct {
	Stage Stage
	Cause error
}

func (e *FatalStageError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Stage, e.Cause.Error())
}

func (e *FatalStageError) Unwrap() error { return e.Cause }
