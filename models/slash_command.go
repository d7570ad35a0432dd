package models

// SlashCommandPayload holds the metadata Slack sends with every slash command.
// Values come from the strictly parsed form body; the command text is carried
// separately on CommandRequest.
type SlashCommandPayload struct {
	Token               string `schema:"token"`
	TeamID              string `schema:"team_id"`
	TeamDomain          string `schema:"team_domain"`
	EnterpriseID        string `schema:"enterprise_id"`
	EnterpriseName      string `schema:"enterprise_name"`
	ChannelID           string `schema:"channel_id"`
	ChannelName         string `schema:"channel_name"`
	UserID              string `schema:"user_id"`
	UserName            string `schema:"user_name"`
	Command             string `schema:"command"`
	APIAppID            string `schema:"api_app_id"`
	IsEnterpriseInstall string `schema:"is_enterprise_install"`
	ResponseURL         string `schema:"response_url"`
	TriggerID           string `schema:"trigger_id"`
}
