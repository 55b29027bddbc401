package core

// FetchError indicates that retrieving the thread replies failed. It is fatal
// to the invocation: there is no partial-thread fallback.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return "failed to fetch thread replies: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// DeliveryError indicates that posting or updating a message failed after
// reporting began. Remaining delivery steps are abandoned; messages already
// sent are not retracted.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return "failed to deliver analysis reply: " + e.Err.Error()
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// CleanupError indicates that removing the status message failed. It is
// logged only - the invocation is still considered successful.
type CleanupError struct {
	Err error
}

func (e *CleanupError) Error() string {
	return "failed to clean up status message: " + e.Err.Error()
}

func (e *CleanupError) Unwrap() error {
	return e.Err
}
