package battle

import (
	"strconv"
	"strings"

	"github.com/jackson-nestelroad/battlecore/rpgerr"
)

// ChoiceKind is the verb of one parsed slot-choice.
type ChoiceKind int

const (
	ChoiceMove ChoiceKind = iota
	ChoiceSwitch
	ChoiceItem
	ChoicePass
	ChoiceForfeit
	ChoiceTeam
)

// Choice is one parsed slot command from the grammar in §6.
type Choice struct {
	Kind ChoiceKind

	MoveIndex int
	Target    string
	Flag      string // "mega" | "zmove" | "dyna" | "tera" | "ultra"

	SwitchIndex int

	ItemID   string
	ItemMove string

	TeamOrder []int
}

// moveFlags is the set of recognized pre-move transformation keywords, used
// to disambiguate a move choice's single trailing field between <target>
// and <flag>.
var moveFlags = map[string]bool{
	"mega": true, "zmove": true, "dyna": true, "tera": true, "ultra": true,
}

// ParseChoice parses the compact text grammar: commands for multiple
// active slots are separated by ';', and a single slot's comma-separated
// fields follow `move <index>[,<target>][,mega|zmove|dyna|tera|ultra]`,
// `switch <team-index>`, `item <item-id>[,<target>][,<move-name>]`,
// `pass`, `forfeit`, `team <ordering>`.
func ParseChoice(raw string) ([]*Choice, error) {
	slots := strings.Split(raw, ";")
	out := make([]*Choice, 0, len(slots))
	for _, slot := range slots {
		slot = strings.TrimSpace(slot)
		if slot == "" {
			continue
		}
		c, err := parseSlotChoice(slot)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, rpgerr.InvalidChoice("empty choice string")
	}
	return out, nil
}

func parseSlotChoice(slot string) (*Choice, error) {
	fields := strings.Split(slot, ",")
	verb := strings.Fields(fields[0])
	if len(verb) == 0 {
		return nil, rpgerr.InvalidChoicef("empty slot command")
	}

	switch verb[0] {
	case "pass":
		return &Choice{Kind: ChoicePass}, nil
	case "forfeit":
		return &Choice{Kind: ChoiceForfeit}, nil
	case "move":
		if len(verb) < 2 {
			return nil, rpgerr.InvalidChoicef("move requires an index")
		}
		idx, err := strconv.Atoi(verb[1])
		if err != nil {
			return nil, rpgerr.InvalidChoicef("invalid move index %q", verb[1])
		}
		c := &Choice{Kind: ChoiceMove, MoveIndex: idx}
		switch len(fields) {
		case 2:
			// A single trailing field is ambiguous between <target> and
			// <flag>; a recognized flag keyword wins, since a bare move
			// against the default target never needs to name one.
			f := strings.TrimSpace(fields[1])
			if moveFlags[f] {
				c.Flag = f
			} else {
				c.Target = f
			}
		case 3:
			c.Target = strings.TrimSpace(fields[1])
			c.Flag = strings.TrimSpace(fields[2])
		}
		return c, nil
	case "switch":
		if len(verb) < 2 {
			return nil, rpgerr.InvalidChoicef("switch requires a team index")
		}
		idx, err := strconv.Atoi(verb[1])
		if err != nil {
			return nil, rpgerr.InvalidChoicef("invalid team index %q", verb[1])
		}
		return &Choice{Kind: ChoiceSwitch, SwitchIndex: idx}, nil
	case "item":
		if len(verb) < 2 {
			return nil, rpgerr.InvalidChoicef("item requires an id")
		}
		c := &Choice{Kind: ChoiceItem, ItemID: verb[1]}
		if len(fields) > 1 {
			c.Target = strings.TrimSpace(fields[1])
		}
		if len(fields) > 2 {
			c.ItemMove = strings.TrimSpace(fields[2])
		}
		return c, nil
	case "team":
		if len(verb) < 2 {
			return nil, rpgerr.InvalidChoicef("team requires an ordering")
		}
		order := make([]int, 0, len(verb[1]))
		for _, ch := range verb[1] {
			n, err := strconv.Atoi(string(ch))
			if err != nil {
				return nil, rpgerr.InvalidChoicef("invalid team ordering digit %q", string(ch))
			}
			order = append(order, n-1)
		}
		return &Choice{Kind: ChoiceTeam, TeamOrder: order}, nil
	default:
		return nil, rpgerr.InvalidChoicef("unrecognized choice verb %q", verb[0])
	}
}
