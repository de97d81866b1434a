package handler

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// CurrentAccountLocal is the fiber.Locals key holding the signed-in models.Account.
	CurrentAccountLocal = "CurrentAccount"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"
)
