package airbase

import (
	"fmt"
	"strings"
)

// Formula — выражение фильтра для языка запросов стора. Собирается только
// из фиксированных шаблонов сравнения; свободная интерполяция строк в фильтр
// структурно невозможна: литералы экранируются здесь и только здесь.
type Formula struct {
	expr string
}

func (f Formula) String() string { return f.expr }

func (f Formula) IsZero() bool { return f.expr == "" }

// escapeValue экранирует бэкслэши и одиночные кавычки перед вставкой
// литерала в формулу.
func escapeValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return v
}

// Eq: {Field} = 'value'
func Eq(field, value string) Formula {
	return Formula{expr: fmt.Sprintf("{%s} = '%s'", field, escapeValue(value))}
}

// SearchIn: поиск подстроки в связанном поле-массиве через ARRAYJOIN.
func SearchIn(needle, field string) Formula {
	return Formula{expr: fmt.Sprintf("SEARCH('%s', ARRAYJOIN({%s}, ','))", escapeValue(needle), field)}
}

// SearchInLower: регистронезависимый вариант SearchIn; needle приводится
// к нижнему регистру вызывающей стороной.
func SearchInLower(needle, field string) Formula {
	return Formula{expr: fmt.Sprintf("SEARCH('%s', LOWER(ARRAYJOIN({%s}, ',')))", escapeValue(needle), field)}
}

// IsAfter: {Field} строго позже даты (YYYY-MM-DD).
func IsAfter(field, date string) Formula {
	return Formula{expr: fmt.Sprintf("IS_AFTER({%s}, '%s')", field, escapeValue(date))}
}

func combine(op string, fs []Formula) Formula {
	parts := make([]string, 0, len(fs))
	for _, f := range fs {
		if !f.IsZero() {
			parts = append(parts, f.expr)
		}
	}
	switch len(parts) {
	case 0:
		return Formula{}
	case 1:
		return Formula{expr: parts[0]}
	default:
		return Formula{expr: op + "(" + strings.Join(parts, ", ") + ")"}
	}
}

func And(fs ...Formula) Formula { return combine("AND", fs) }

func Or(fs ...Formula) Formula { return combine("OR", fs) }
