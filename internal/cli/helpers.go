package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shaiso/makeblueprint/internal/makeapi"
)

// ClientFn лениво создаёт API-клиент: конфигурация читается только
// командами, которым нужна сеть.
type ClientFn func() (*makeapi.Client, error)

// OutputFn создаёт Output после парсинга persistent-флагов.
type OutputFn func() *Output

// parseID разбирает числовой ID из аргумента команды.
func parseID(arg, kind string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, arg)
	}
	return id, nil
}

// parseMapping разбирает пары old=new из повторяемого флага --map.
func parseMapping(pairs []string) (map[int]int, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	mapping := make(map[int]int, len(pairs))
	for _, pair := range pairs {
		oldStr, newStr, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid mapping %q, expected OLD=NEW", pair)
		}
		oldID, err := strconv.Atoi(oldStr)
		if err != nil {
			return nil, fmt.Errorf("invalid old hook id in %q", pair)
		}
		newID, err := strconv.Atoi(newStr)
		if err != nil {
			return nil, fmt.Errorf("invalid new hook id in %q", pair)
		}
		mapping[oldID] = newID
	}
	return mapping, nil
}

// activeLabel — человекочитаемый статус сценария.
func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}
