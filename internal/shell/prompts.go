package shell

import (
	"context"
	"fmt"
	"strings"

	"bikeshare/internal/config"
	"bikeshare/pkg/contracts/domain"
)

// ask prints question and re-prompts until parse accepts the answer.
func ask[T any](ctx context.Context, s *Shell, question string, parse func(string) (T, bool)) (T, error) {
	for {
		s.printer.Prompt(question)
		line, err := s.input.ReadLine(ctx)
		if err != nil {
			var zero T
			return zero, err
		}
		if v, ok := parse(strings.TrimSpace(line)); ok {
			return v, nil
		}
		s.printer.Warn("Sorry, %q is not a valid answer.", strings.TrimSpace(line))
	}
}

func (s *Shell) askCity(ctx context.Context) (config.CitySource, error) {
	question := fmt.Sprintf("From what city would you like statistics: %s?", joinChoices(s.catalog.Names()))
	return ask(ctx, s, question, s.catalog.Lookup)
}

func (s *Shell) askFilterMode(ctx context.Context) (domain.FilterMode, error) {
	return ask(ctx, s, "Would you like to filter the data by month, day, both, or none?", func(answer string) (domain.FilterMode, bool) {
		mode, err := domain.ParseFilterMode(answer)
		return mode, err == nil
	})
}

func (s *Shell) askMonth(ctx context.Context) (string, error) {
	question := fmt.Sprintf("Which month (%s)?", strings.Join(titled(domain.MonthCodes()), ", "))
	return ask(ctx, s, question, func(answer string) (string, bool) {
		if _, err := domain.ParseMonth(answer); err != nil {
			return "", false
		}
		return strings.ToLower(answer), true
	})
}

func (s *Shell) askDay(ctx context.Context) (string, error) {
	question := fmt.Sprintf("What day (%s)?", strings.Join(titled(domain.DayCodes()), ", "))
	return ask(ctx, s, question, func(answer string) (string, bool) {
		if _, err := domain.ParseWeekday(answer); err != nil {
			return "", false
		}
		return strings.ToLower(answer), true
	})
}

func (s *Shell) askYesNo(ctx context.Context, question string) (bool, error) {
	return ask(ctx, s, question+" Enter yes or no.", parseYesNo)
}

func parseYesNo(answer string) (bool, bool) {
	switch strings.ToLower(answer) {
	case "yes", "y":
		return true, true
	case "no", "n":
		return false, true
	}
	return false, false
}

// joinChoices renders ["a", "b", "c"] as "a, b or c"
func joinChoices(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}

func titled(codes []string) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		if c != "" {
			out[i] = strings.ToUpper(c[:1]) + c[1:]
		}
	}
	return out
}
