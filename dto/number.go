package dto

import (
	"encoding/json"
	"strings"

	"github.com/princinho/boutique/utils"
)

// Number accepts a JSON number or a numeric string. Anything else decodes
// to 0, matching how form inputs are coerced elsewhere.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = 0
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*n = Number(utils.ParseFloatOrZero(str))
		return nil
	}
	*n = Number(utils.ParseFloatOrZero(s))
	return nil
}

func (n Number) Float() float64 { return float64(n) }

func (n Number) Int() int { return int(n) }
