package cli

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/exp/charmtone"

	"github.com/macropower/adastra/api/v1beta1/configs"
	"github.com/macropower/adastra/pkg/config"
	"github.com/macropower/adastra/pkg/ui/theme"
)

// ColorSchemeFunc styles help and error output with the configured theme.
// Flags are not parsed yet when fang asks for the scheme, so only the
// default config path is read.
func ColorSchemeFunc(c lipgloss.LightDarkFunc) fang.ColorScheme {
	l, err := config.NewLoaderFromFile(configs.GetPath(), newEmptyConfig, nil, config.WithThemeFromData())
	if err != nil {
		return ThemeColorScheme(theme.Default, c)
	}

	return ThemeColorScheme(l.Theme(), c)
}

func ThemeColorScheme(t *theme.Theme, c lipgloss.LightDarkFunc) fang.ColorScheme {
	text := c(charmtone.Charcoal, charmtone.Ash)

	var accent color.Color = t.MenuStyle.GetForeground()

	return fang.ColorScheme{
		Base:           text,
		Title:          t.LogoStyle.GetForeground(),
		Codeblock:      c(charmtone.Salt, lipgloss.Color("#2F2E36")),
		Program:        accent,
		Command:        accent,
		DimmedArgument: t.SubtleStyle.GetForeground(),
		Comment:        t.SubtleStyle.GetForeground(),
		Flag:           accent,
		Argument:       text,
		Description:    text,
		FlagDefault:    t.TitleStyle.GetForeground(),
		QuotedString:   text,
		ErrorHeader: [2]color.Color{
			charmtone.Butter,
			t.ErrorStyle.GetForeground(),
		},
	}
}

func newEmptyConfig() *configs.Config {
	return &configs.Config{}
}
