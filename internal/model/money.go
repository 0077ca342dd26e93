package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Money хранит сумму в минимальных единицах (копейках/центах)
type Money int64

// ParseMoney разбирает десятичную запись вида "120", "99.5", "99.50"
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")

	whole, frac, hasFrac := strings.Cut(digits, ".")
	if whole == "" || !isDigits(whole) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}

	var cents int64
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 || !isDigits(frac) {
			return 0, fmt.Errorf("invalid amount %q: at most two decimal places", s)
		}
		if len(frac) == 1 {
			frac += "0"
		}
		cents, _ = strconv.ParseInt(frac, 10, 64)
	}

	total := units*100 + cents
	if neg {
		total = -total
	}
	return Money(total), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ForDuration возвращает стоимость занятия длительностью minutes при часовой ставке m
func (m Money) ForDuration(minutes int) Money {
	return Money((int64(m)*int64(minutes) + 30) / 60)
}

func (m Money) String() string {
	v := int64(m)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*m = 0
		return nil
	}
	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
