package userservice

// User модель пользователя из UserService
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Error string `json:"error"`
}
