package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/formdeck/formdeck/pkg/render"
	"github.com/formdeck/formdeck/pkg/schema"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestRender_FullForm(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada Lovelace", "28", "2024-06-01"},
		selectIdx: []int{0},
		multiIdx:  [][]int{{2, 3}},
		textAreas: []string{"Remote first."},
		confirm:   []bool{true},
	}
	r := New(WithPromptDriver(driver))

	out, err := r.Render(context.Background(), schema.EmployeeOnboarding(), render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var values map[string]any
	if err := json.Unmarshal(out, &values); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}

	if got := values["Full Name"]; got != "Ada Lovelace" {
		t.Errorf("Full Name = %v", got)
	}
	if got := values["Age"]; got != float64(28) {
		t.Errorf("Age = %v", got)
	}
	if got := values["Department"]; got != "Engineering" {
		t.Errorf("Department = %v", got)
	}
	skills, _ := values["Skills"].([]any)
	if len(skills) != 2 || skills[0] != "Python" || skills[1] != "Communication" {
		t.Errorf("Skills = %v", values["Skills"])
	}
	if got := values["Joining Date"]; got != "2024-06-01" {
		t.Errorf("Joining Date = %v", got)
	}
	if got := values["Notes"]; got != "Remote first." {
		t.Errorf("Notes = %v", got)
	}
	if got := values["Full Time"]; got != true {
		t.Errorf("Full Time = %v", got)
	}
	if len(driver.infoMessages) != 0 {
		t.Errorf("unexpected info messages: %v", driver.infoMessages)
	}
}

func TestRender_RepromptsUntilValid(t *testing.T) {
	// "Al" is too short, then the corrected name passes.
	driver := &stubDriver{
		inputs:    []string{"Al", "Alice", "30", "2024-06-01"},
		selectIdx: []int{1},
		multiIdx:  [][]int{{0}},
		textAreas: []string{""},
		confirm:   []bool{false},
	}
	r := New(WithPromptDriver(driver))

	out, err := r.Render(context.Background(), schema.EmployeeOnboarding(), render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var values map[string]any
	if err := json.Unmarshal(out, &values); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if got := values["Full Name"]; got != "Alice" {
		t.Errorf("Full Name = %v", got)
	}
	if len(driver.infoMessages) != 1 || !strings.Contains(driver.infoMessages[0], "at least 3") {
		t.Errorf("info messages = %v", driver.infoMessages)
	}
	// Empty optional textarea stays out of the payload.
	if _, ok := values["Notes"]; ok {
		t.Errorf("Notes should be absent, got %v", values["Notes"])
	}
}

func TestRender_NumberReprompts(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Grace Hopper", "abc", "0", "44", "2024-06-01"},
		selectIdx: []int{2},
		multiIdx:  [][]int{{1}},
		textAreas: []string{""},
		confirm:   []bool{true},
	}
	r := New(WithPromptDriver(driver))

	out, err := r.Render(context.Background(), schema.EmployeeOnboarding(), render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var values map[string]any
	if err := json.Unmarshal(out, &values); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if got := values["Age"]; got != float64(44) {
		t.Errorf("Age = %v", got)
	}
	if len(driver.infoMessages) != 2 {
		t.Fatalf("info messages = %v", driver.infoMessages)
	}
	if !strings.Contains(driver.infoMessages[0], "must be a number") {
		t.Errorf("first message = %q", driver.infoMessages[0])
	}
	if !strings.Contains(driver.infoMessages[1], "between 18 and 65") {
		t.Errorf("second message = %q", driver.infoMessages[1])
	}
}

func TestFillFields_OnlyNamedFields(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{"21"},
	}
	r := New(WithPromptDriver(driver))

	prefill := map[string]any{
		"Full Name":    "Ada Lovelace",
		"Age":          float64(17),
		"Department":   "Engineering",
		"Skills":       []string{"Python"},
		"Joining Date": "2024-06-01",
	}
	errs := map[string]string{"Age": "Age must be between 18 and 65."}

	values, err := r.FillFields(context.Background(), schema.EmployeeOnboarding(), []string{"Age"}, prefill, errs)
	if err != nil {
		t.Fatalf("fill fields: %v", err)
	}

	if got := values["Age"]; got != float64(21) {
		t.Errorf("Age = %v", got)
	}
	if got := values["Full Name"]; got != "Ada Lovelace" {
		t.Errorf("Full Name = %v", got)
	}
	// The server's message shows before the re-prompt.
	if len(driver.infoMessages) != 1 || driver.infoMessages[0] != "Age must be between 18 and 65." {
		t.Errorf("info messages = %v", driver.infoMessages)
	}
	// Prefill map stays untouched.
	if prefill["Age"] != float64(17) {
		t.Errorf("prefill mutated: %v", prefill["Age"])
	}
}

func TestRender_AbortPropagates(t *testing.T) {
	driver := &abortDriver{}
	r := New(WithPromptDriver(driver))

	_, err := r.Render(context.Background(), schema.EmployeeOnboarding(), render.Options{})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("err = %v, want ErrAborted", err)
	}
}

type abortDriver struct{ stubDriver }

func (a *abortDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	return "", ErrAborted
}

func TestRender_PrettyOutput(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada Lovelace", "28", "2024-06-01"},
		selectIdx: []int{0},
		multiIdx:  [][]int{{0, 2}},
		textAreas: []string{""},
		confirm:   []bool{true},
	}
	r := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatPrettyText))

	if got := r.ContentType(); got != "text/plain" {
		t.Errorf("content type = %q", got)
	}

	out, err := r.Render(context.Background(), schema.EmployeeOnboarding(), render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(out)

	if !strings.Contains(text, "Full Name: Ada Lovelace") {
		t.Errorf("missing name line:\n%s", text)
	}
	if !strings.Contains(text, "Age: 28") {
		t.Errorf("missing age line:\n%s", text)
	}
	if !strings.Contains(text, "Skills: React, Python") {
		t.Errorf("missing skills line:\n%s", text)
	}
	if !strings.Contains(text, "Full Time: Yes") {
		t.Errorf("missing full time line:\n%s", text)
	}
}
