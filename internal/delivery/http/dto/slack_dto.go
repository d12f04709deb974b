package dto

// SlackResponse is the message payload a slash command expects back.
// response_type "in_channel" is visible to everyone, "ephemeral" only to the
// user who ran the command.
type SlackResponse struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}
