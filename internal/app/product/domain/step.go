package domain

// StepKind identifies the remote operation a pipeline step performed.
type StepKind string

const (
	StepUpdate        StepKind = "update"
	StepDeleteImage   StepKind = "delete_image"
	StepCreateImage   StepKind = "create_image"
	StepDeleteProduct StepKind = "delete_product"
	StepCreateProduct StepKind = "create_product"
)

// FailureCause classifies why a step or an outcome failed. It drives status
// mapping at the transports and is never shown to the operator.
type FailureCause string

const (
	CauseNone       FailureCause = ""
	CauseValidation FailureCause = "validation"
	CauseUserError  FailureCause = "user_error"
	CauseTransport  FailureCause = "transport"
	CausePartial    FailureCause = "partial"
	CauseCancelled  FailureCause = "cancelled"
)

// Generic messages for transport failures, keyed by step kind.
var transportMessages = map[StepKind]string{
	StepUpdate:        "An error occurred while updating the product",
	StepDeleteImage:   "An error occurred while deleting an image",
	StepCreateImage:   "An error occurred while creating an image",
	StepDeleteProduct: "An error occurred while deleting the product",
	StepCreateProduct: "An error occurred while creating the product",
}

// MsgCancelled is the step message recorded for steps that were never
// dispatched because the invoking context was done.
const MsgCancelled = "reconciliation cancelled"

// TransportMessage returns the generic caller-facing message for a transport
// failure of the given step kind.
func TransportMessage(kind StepKind) string {
	if msg, ok := transportMessages[kind]; ok {
		return msg
	}
	return "An error occurred while contacting the catalog"
}

// StepResult is the immutable record of one pipeline step.
type StepResult struct {
	Kind         StepKind
	Target       string // product or image id the step acted on; empty for creations
	Success      bool
	ErrorMessage string
	Cause        FailureCause
}

// Succeeded builds a successful StepResult.
func Succeeded(kind StepKind, target string) StepResult {
	return StepResult{Kind: kind, Target: target, Success: true}
}

// RejectedByUserError builds a failing StepResult for a business-rule rejection.
func RejectedByUserError(kind StepKind, target, message string) StepResult {
	return StepResult{Kind: kind, Target: target, ErrorMessage: message, Cause: CauseUserError}
}

// FailedInTransport builds a failing StepResult for a transport failure.
func FailedInTransport(kind StepKind, target string) StepResult {
	return StepResult{Kind: kind, Target: target, ErrorMessage: TransportMessage(kind), Cause: CauseTransport}
}

// Cancelled builds a failing StepResult for a step that was never dispatched.
func Cancelled(kind StepKind, target string) StepResult {
	return StepResult{Kind: kind, Target: target, ErrorMessage: MsgCancelled, Cause: CauseCancelled}
}

// IsImageStep reports whether the step belongs to an image group.
func (r StepResult) IsImageStep() bool {
	return r.Kind == StepDeleteImage || r.Kind == StepCreateImage
}

// OutcomeStatus is the caller-facing status of a reconciliation.
type OutcomeStatus string

const (
	StatusSuccess OutcomeStatus = "success"
	StatusError   OutcomeStatus = "error"
)

// Outcome is the single value a reconciliation returns to its caller.
type Outcome struct {
	Status  OutcomeStatus
	Message string
	Cause   FailureCause
}

// SuccessOutcome returns the success outcome.
func SuccessOutcome() Outcome {
	return Outcome{Status: StatusSuccess}
}

// ErrorOutcome returns an error outcome with the given message and cause.
func ErrorOutcome(message string, cause FailureCause) Outcome {
	return Outcome{Status: StatusError, Message: message, Cause: cause}
}

// IsSuccess reports whether the outcome is a success.
func (o Outcome) IsSuccess() bool {
	return o.Status == StatusSuccess
}

// StepFromRemote classifies the result of one remote call. A transport error
// wins over user errors; the first user error's message is used verbatim.
func StepFromRemote(kind StepKind, target string, userErr *RemoteUserError, err error) StepResult {
	switch {
	case err != nil:
		return FailedInTransport(kind, target)
	case userErr != nil:
		return RejectedByUserError(kind, target, userErr.Message)
	default:
		return Succeeded(kind, target)
	}
}
