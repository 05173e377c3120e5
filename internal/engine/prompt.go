package engine

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/tatianab/pokemon-agent/internal/models"
)

//go:embed prompts/decide_player.txt
var decidePlayerPrompt string

//go:embed prompts/decide_battle.txt
var decideBattlePrompt string

//go:embed prompts/describe_screen.txt
var describeScreenPrompt string

var (
	decidePlayerTmpl   = template.Must(template.New("decide_player").Parse(decidePlayerPrompt))
	decideBattleTmpl   = template.Must(template.New("decide_battle").Parse(decideBattlePrompt))
	describeScreenTmpl = template.Must(template.New("describe_screen").Parse(describeScreenPrompt))
)

// historyWindow is how many recent actions go into a prompt.
const historyWindow = 10

type promptData struct {
	Location    string
	Coordinates string
	Money       uint
	Badges      uint
	MaxBadges   int
	Lead        string
	Team        []string
	Items       []string
	Objectives  []string
	History     []string
	Screen      string
	Vocabulary  string
}

func newPromptData(req Request, screen string) promptData {
	s := req.State
	data := promptData{
		Location:    s.Location,
		Coordinates: s.Coordinates.String(),
		Money:       s.Money,
		Badges:      s.Badges,
		MaxBadges:   models.MaxBadges,
		Objectives:  Objectives(s),
		Screen:      strings.TrimSpace(screen),
	}
	for _, p := range s.PokemonTeam {
		data.Team = append(data.Team, formatPokemon(p))
	}
	if lead, ok := s.Lead(); ok {
		data.Lead = formatPokemon(lead)
	}
	for _, it := range s.Items {
		data.Items = append(data.Items, fmt.Sprintf("%s x%d", it.Name, it.Count))
	}
	for _, e := range req.History.Recent(historyWindow) {
		if e.Commentary == "" {
			data.History = append(data.History, e.Action.String())
			continue
		}
		data.History = append(data.History, fmt.Sprintf("%s - %s", e.Action, e.Commentary))
	}
	vocab := make([]string, 0, 8)
	for _, a := range models.Actions() {
		vocab = append(vocab, a.String())
	}
	data.Vocabulary = strings.Join(vocab, ", ")
	return data
}

func formatPokemon(p models.PokemonEntity) string {
	return fmt.Sprintf("%s (Lv.%d) HP: %d/%d", p.Name, p.Level, p.HP, p.MaxHP)
}

func render(tmpl *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// Objectives suggests what to work toward given progress and location.
func Objectives(s models.GameState) []string {
	loc := s.Location
	hasTeam := len(s.PokemonTeam) > 0
	switch {
	case s.Badges == 0 && strings.Contains(loc, "Pallet Town") && !hasTeam:
		return []string{"Get your first Pokémon from Professor Oak's Lab", "Begin your journey to become a Pokémon Master"}
	case s.Badges == 0 && strings.Contains(loc, "Pallet Town"):
		return []string{"Head north to Route 1", "Travel to Viridian City"}
	case s.Badges == 0 && strings.Contains(loc, "Route 1"):
		return []string{"Travel north to Viridian City", "Train your starter Pokémon"}
	case s.Badges == 0 && strings.Contains(loc, "Viridian City"):
		return []string{"Visit the Pokémon Center to heal", "Stock up on supplies", "Head north to Viridian Forest"}
	case s.Badges == 0 && strings.Contains(loc, "Viridian Forest"):
		return []string{"Navigate through the forest", "Catch Bug-type Pokémon", "Reach Pewter City"}
	case s.Badges == 0 && strings.Contains(loc, "Pewter City"):
		return []string{"Challenge Brock at the Pewter Gym", "Aim to earn your first badge"}
	case s.Badges == 1:
		return []string{"Head east to Mt. Moon", "Make your way to Cerulean City", "Prepare to challenge Misty"}
	case s.Badges == 2:
		return []string{"Explore east of Cerulean", "Head south to Vermilion City", "Prepare to battle Lt. Surge"}
	case s.Badges >= 6:
		return []string{"Prepare for the Elite Four", "Train your team to higher levels", "Ensure balanced type coverage"}
	}
	return []string{"Explore the current area", "Train your Pokémon", "Find and challenge the next Gym Leader"}
}
