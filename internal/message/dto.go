// AngelaMos | 2026
// dto.go

package message

type SendRequest struct {
	ReceiverID    string `json:"receiver_id"    validate:"required,uuid"`
	ApplicationID string `json:"application_id" validate:"omitempty,uuid"`
	Subject       string `json:"subject"        validate:"required,min=1,max=200"`
	Content       string `json:"content"        validate:"required,min=1,max=10000"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}
