package derive

import "time"

// Policy — продуктовые пороги. Это настройки, а не структурные инварианты,
// поэтому они приходят из конфига, а не зашиты в вызовы.
type Policy struct {
	StaleAfter    time.Duration // default: 72h
	OverdueAfter  time.Duration // default: 24h
	CriticalAfter time.Duration // default: 48h
}

func DefaultPolicy() Policy {
	return Policy{
		StaleAfter:    72 * time.Hour,
		OverdueAfter:  24 * time.Hour,
		CriticalAfter: 48 * time.Hour,
	}
}

// Normalize подставляет дефолты вместо нулевых/отрицательных значений.
func (p Policy) Normalize() Policy {
	def := DefaultPolicy()
	if p.StaleAfter <= 0 {
		p.StaleAfter = def.StaleAfter
	}
	if p.OverdueAfter <= 0 {
		p.OverdueAfter = def.OverdueAfter
	}
	if p.CriticalAfter <= 0 {
		p.CriticalAfter = def.CriticalAfter
	}
	if p.CriticalAfter < p.OverdueAfter {
		p.CriticalAfter = p.OverdueAfter
	}
	return p
}
