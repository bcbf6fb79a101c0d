package validator

// Request DTOs shared by handlers and services. Length limits follow the
// data model: messages 2000, question titles 200, question bodies 5000,
// chat names 100.

type OAuthLoginRequest struct {
	Provider string  `json:"provider" validate:"required,max=50"`
	OAuthID  string  `json:"oauthId" validate:"required,max=255"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Username *string `json:"username" validate:"omitempty,max=100"`
}

type VerifyTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type CreateQuestionRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required,max=5000"`
	Subject string `json:"subject" validate:"omitempty,oneof=math science history english other"`
}

type ReplyRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

type CreateChatRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type JoinChatRequest struct {
	InviteCode string `json:"inviteCode" validate:"required,min=6,max=10"`
}

type SendInviteRequest struct {
	TargetUserID   string `json:"targetUserId" validate:"required"`
	TargetUsername string `json:"targetUsername" validate:"omitempty,max=100"`
}

type ConsentRequest struct {
	Accept *bool `json:"accept" validate:"required"`
}

type SubmitExamRequest struct {
	Answers []int `json:"answers" validate:"required"`
}

type UpdateProfileRequest struct {
	Username   *string  `json:"username" validate:"omitempty,max=100"`
	GradeLevel *int     `json:"gradeLevel" validate:"omitempty,gte=1,lte=12"`
	Bio        *string  `json:"bio" validate:"omitempty,max=500"`
	Interests  []string `json:"interests" validate:"omitempty,dive,max=50"`
	Subjects   []string `json:"subjects" validate:"omitempty,dive,max=50"`
}
