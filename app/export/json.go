package export

import (
	"github.com/ohler55/ojg/oj"

	"queryexplorer/app/interfaces"
)

// ToJSON renders rows as an indented JSON array of objects with sorted keys
func ToJSON(rows interfaces.RowSequence) []byte {
	data := make([]any, len(rows))
	for i, r := range rows {
		data[i] = map[string]any{
			"id":    r.ID,
			"name":  r.Name,
			"age":   r.Age,
			"email": r.Email,
		}
	}
	return []byte(oj.JSON(data, &oj.Options{Indent: 2, Sort: true}))
}
