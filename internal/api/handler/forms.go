package handler

// Form payloads. Only credentials are validated; listing, profile and report
// fields are stored as submitted.

type credentialsForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type productForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Price       string `form:"price"`
}

type profileForm struct {
	Bio string `form:"bio"`
}

type reportForm struct {
	TargetID string `form:"target_id"`
	Reason   string `form:"reason"`
}
