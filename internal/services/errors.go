package services

// ValidationError is a business-rule failure raised before any store write.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

const MsgAmountNotPositive = "Amount must be positive"
