package domain

var (
	MessageSuccessRegister    = "user registered successfully"
	MessageSuccessLogin       = "login successful"
	MessageSuccessGetUsers    = "success get users"
	MessageSuccessGetUser     = "success get user"
	MessageSuccessSetPassword = "password changed successfully"
	MessageSuccessDeleteUser  = "user deleted successfully"
	MessageSuccessGetSubs     = "success get subscriptions"
	MessageSuccessSubscribe   = "subscribed successfully"
	MessageSuccessUnsubscribe = "unsubscribed successfully"

	MessageFailedRegister    = "failed to register user"
	MessageFailedLogin       = "failed to login"
	MessageFailedGetUsers    = "failed to get users"
	MessageFailedGetUser     = "failed to get user"
	MessageFailedSetPassword = "failed to change password"
	MessageFailedDeleteUser  = "failed to delete user"
	MessageFailedGetSubs     = "failed to get subscriptions"
	MessageFailedSubscribe   = "failed to subscribe"
	MessageFailedUnsubscribe = "failed to unsubscribe"

	ErrUserNotFound       = NewNotFoundError("user not found")
	ErrEmailTaken         = NewConflictError("user with this email already exists")
	ErrUsernameTaken      = NewConflictError("user with this username already exists")
	ErrInvalidCredentials = NewValidationError("invalid email or password")
	ErrWrongPassword      = NewValidationError("current password is incorrect")

	ErrSelfSubscription  = NewValidationError("you cannot subscribe to yourself")
	ErrAlreadySubscribed = NewConflictError("already subscribed to this user")
	ErrNotSubscribed     = NewNotFoundError("not subscribed to this user")
)

type (
	RegisterRequest struct {
		Email     string `json:"email" validate:"required,email,max=254"`
		Username  string `json:"username" validate:"required,max=150,username"`
		FirstName string `json:"first_name" validate:"required,max=150"`
		LastName  string `json:"last_name" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,min=8,max=150"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"auth_token"`
		Role  string `json:"role"`
	}

	SetPasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8,max=150,nefield=CurrentPassword"`
	}

	DeleteUserRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
	}

	User struct {
		Email        string `json:"email"`
		ID           string `json:"id"`
		Username     string `json:"username"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		IsSubscribed bool   `json:"is_subscribed"`
	}

	// UserWithRecipes is an entry of the subscriptions listing.
	UserWithRecipes struct {
		User
		Recipes      []MiniRecipe `json:"recipes"`
		RecipesCount int64        `json:"recipes_count"`
	}
)
