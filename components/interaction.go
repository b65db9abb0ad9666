package components

import "github.com/bwmarrin/discordgo"

// Interaction is an interaction narrowed to the type a context expects.
type Interaction interface {
	// Base returns the interaction as delivered by discordgo.
	Base() *discordgo.Interaction

	// CustomID returns the custom ID of the component the user interacted with.
	CustomID() string
}

// ButtonInteraction is an interaction created by pressing a button.
type ButtonInteraction struct {
	*discordgo.Interaction

	Component discordgo.MessageComponentInteractionData
}

var _ Interaction = (*ButtonInteraction)(nil)

// Base returns the interaction as delivered by discordgo.
func (i *ButtonInteraction) Base() *discordgo.Interaction {
	return i.Interaction
}

// CustomID returns the custom ID of the pressed button.
func (i *ButtonInteraction) CustomID() string {
	return i.Component.CustomID
}

// MenuInteraction is an interaction created by choosing options of a select menu.
type MenuInteraction struct {
	*discordgo.Interaction

	Component discordgo.MessageComponentInteractionData
}

var _ Interaction = (*MenuInteraction)(nil)

// Base returns the interaction as delivered by discordgo.
func (i *MenuInteraction) Base() *discordgo.Interaction {
	return i.Interaction
}

// CustomID returns the custom ID of the select menu.
func (i *MenuInteraction) CustomID() string {
	return i.Component.CustomID
}

// Values returns the values of the chosen options.
func (i *MenuInteraction) Values() []string {
	return i.Component.Values
}

// AsButton narrows the given interaction to a *ButtonInteraction.
// It returns *InteractionTypeError when the interaction was not created by a button.
func AsButton(interaction *discordgo.Interaction) (*ButtonInteraction, error) {
	data, err := componentData(interaction, discordgo.ButtonComponent, func(t discordgo.ComponentType) bool {
		return t == discordgo.ButtonComponent
	})
	if err != nil {
		return nil, err
	}

	return &ButtonInteraction{Interaction: interaction, Component: data}, nil
}

// AsMenu narrows the given interaction to a *MenuInteraction.
// Every kind of select menu is accepted.
// It returns *InteractionTypeError when the interaction was not created by a select menu.
func AsMenu(interaction *discordgo.Interaction) (*MenuInteraction, error) {
	data, err := componentData(interaction, discordgo.SelectMenuComponent, isSelectMenu)
	if err != nil {
		return nil, err
	}

	return &MenuInteraction{Interaction: interaction, Component: data}, nil
}

func isSelectMenu(t discordgo.ComponentType) bool {
	switch t {
	case discordgo.SelectMenuComponent,
		discordgo.UserSelectMenuComponent,
		discordgo.RoleSelectMenuComponent,
		discordgo.MentionableSelectMenuComponent,
		discordgo.ChannelSelectMenuComponent:
		return true
	default:
		return false
	}
}

// componentData extracts the component data without the panic discordgo.Interaction.MessageComponentData raises on mismatch.
func componentData(interaction *discordgo.Interaction, expected discordgo.ComponentType, accept func(discordgo.ComponentType) bool) (discordgo.MessageComponentInteractionData, error) {
	if interaction == nil {
		return discordgo.MessageComponentInteractionData{}, ErrNilInteraction
	}

	mismatch := &InteractionTypeError{Expected: expected, ActualType: interaction.Type}

	if interaction.Type != discordgo.InteractionMessageComponent {
		return discordgo.MessageComponentInteractionData{}, mismatch
	}

	data, ok := interaction.Data.(discordgo.MessageComponentInteractionData)
	if !ok {
		return discordgo.MessageComponentInteractionData{}, mismatch
	}

	if !accept(data.ComponentType) {
		mismatch.ActualComponent = data.ComponentType
		return discordgo.MessageComponentInteractionData{}, mismatch
	}

	return data, nil
}
