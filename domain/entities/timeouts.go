package entities

import "time"

// Timeouts are the per-operation budgets every primitive runs under.
// There is no global deadline: each wait fails on its own with ErrTimeout.
type Timeouts struct {
	Navigation   time.Duration `mapstructure:"navigation"`
	Action       time.Duration `mapstructure:"action"`
	Element      time.Duration `mapstructure:"element"`
	Visible      time.Duration `mapstructure:"visible"`
	Global       time.Duration `mapstructure:"global"`
	Select       time.Duration `mapstructure:"select"`
	SelectSettle time.Duration `mapstructure:"select_settle"`
	ModalProbe   time.Duration `mapstructure:"modal_probe"`
	ErrorProbe   time.Duration `mapstructure:"error_probe"`
	Quiescence   time.Duration `mapstructure:"quiescence"`
}

// DefaultTimeouts - budgets used when nothing is configured
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Navigation:   30 * time.Second,
		Action:       10 * time.Second,
		Element:      5 * time.Second,
		Visible:      10 * time.Second,
		Global:       60 * time.Second,
		Select:       60 * time.Second,
		SelectSettle: 500 * time.Millisecond,
		ModalProbe:   3 * time.Second,
		ErrorProbe:   3 * time.Second,
		Quiescence:   500 * time.Millisecond,
	}
}
