package bot

import "github.com/bwmarrin/discordgo"

// Response is one outgoing chat message, plain text or embed. Dispatch
// builds responses as values; sending happens separately so command handling
// stays testable without a session.
type Response struct {
	Content string
	Embed   *discordgo.MessageEmbed
}

func text(s string) Response { return Response{Content: s} }

func embed(e *discordgo.MessageEmbed) Response { return Response{Embed: e} }
