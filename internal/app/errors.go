package app

import "errors"

// Validation and conflict errors are written for end users and surface
// verbatim in API responses.
var (
	ErrEmailAndPasswordRequired = errors.New("email and password are required")
	ErrEmailAlreadyRegistered   = errors.New("email already registered")
	ErrUsernameTaken            = errors.New("username already in use")
	ErrPhoneAlreadyRegistered   = errors.New("phone number already registered")

	// ErrInvalidCredentials deliberately does not reveal whether the
	// account exists.
	ErrInvalidCredentials = errors.New("incorrect email/phone or password")

	ErrMessageRequired = errors.New("card message is required")

	// ErrCreateCardFailed hides backend details from the client; the real
	// cause is logged server-side.
	ErrCreateCardFailed = errors.New("failed to create card")

	ErrUnsupportedFileType = errors.New("unsupported file type: use images, videos or audio")
	ErrFileTooLarge        = errors.New("file exceeds the maximum allowed size")
	ErrFileRequired        = errors.New("no file was sent")
)
