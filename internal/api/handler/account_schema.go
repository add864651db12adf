package handler

// --- Account form schemas ---
//
// Field names follow the form inputs of the account pages; the password is
// never echoed back on a validation failure.

type loginForm struct {
	Email    string `form:"account_email"    validate:"required,email"`
	Password string `form:"account_password" validate:"required"`
}

type registerForm struct {
	FirstName string `form:"account_firstname" validate:"required"`
	LastName  string `form:"account_lastname"  validate:"required"`
	Email     string `form:"account_email"     validate:"required,email"`
	Password  string `form:"account_password"  validate:"required,strongpassword"`
}

type profileForm struct {
	FirstName string `form:"account_firstname" validate:"required"`
	LastName  string `form:"account_lastname"  validate:"required"`
	Email     string `form:"account_email"     validate:"required,email"`
}

type passwordForm struct {
	Password string `form:"account_password" validate:"required,strongpassword"`
}
