// Package components provides buttons and select menus that run Go handlers
// when users interact with them, and the contexts those handlers receive.
//
// Build a Components container, Add the buttons and menus to it, render it
// with MessageComponents and Register it with a Registry. The Registry
// routes every *discordgo.InteractionCreate of a message component to the
// matching component, wrapping the interaction in a ButtonContext or a
// MenuContext.
package components
