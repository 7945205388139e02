package derive

import (
	"time"

	"github.com/BearBump/CaseDesk/internal/models"
)

// CaseAging — возраст кейса и флаги эскалации. Чисто отображательская логика:
// запись кейса не меняется, авто-эскалации нет.
type CaseAging struct {
	AgeHours   int  `json:"ageHours"`
	IsOverdue  bool `json:"isOverdue"`
	IsCritical bool `json:"isCritical"`
}

// Терминальные статусы гасят все предупреждения о возрасте.
func isTerminalStatus(status string) bool {
	return status == models.CaseStatusResolved || status == models.CaseStatusReplied
}

func Aging(createdAt time.Time, status string, now time.Time, p Policy) CaseAging {
	p = p.Normalize()

	age := now.Sub(createdAt)
	if age < 0 {
		age = 0
	}
	aging := CaseAging{AgeHours: int(age.Hours())}

	if isTerminalStatus(status) {
		return aging
	}
	// Флаги считаются от целых часов, как и AgeHours: кейс в 24ч10м ещё
	// не просрочен, иначе поля структуры противоречат друг другу.
	aging.IsOverdue = aging.AgeHours > int(p.OverdueAfter.Hours())
	aging.IsCritical = aging.AgeHours > int(p.CriticalAfter.Hours())
	return aging
}
