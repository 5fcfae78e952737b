package domain

type CtxKey string

const (
	KeyUserEmail CtxKey = "Email"
	KeyRequestID CtxKey = "RequestID"
)
