// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/dacolabs/schemaio/internal/schema"
)

// RunColumnForm prompts the user to define a new column for the given
// schema and returns the resulting column schema.
func RunColumnForm(s *schema.Schema) (schema.ColumnSchema, error) {
	var name, dtypeName string

	dtypeOptions := make([]huh.Option[string], 0, len(schema.DTypeNames()))
	for _, n := range schema.DTypeNames() {
		dtypeOptions = append(dtypeOptions, huh.NewOption(n, n))
	}

	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Column name").
				Placeholder("e.g., item_id").
				Value(&name).
				Validate(identifierValidator(func(n string) bool {
					_, exists := s.Column(n)
					return exists
				})),
			huh.NewSelect[string]().
				Title("Logical dtype").
				Options(dtypeOptions...).
				Value(&dtypeName).
				Height(8),
		),
	).Run(); err != nil {
		return schema.ColumnSchema{}, err
	}

	dtype, err := schema.ParseDType(dtypeName)
	if err != nil {
		return schema.ColumnSchema{}, err
	}

	var tagValues []string
	tagOptions := make([]huh.Option[string], 0, len(schema.WellKnownTags()))
	for _, t := range schema.WellKnownTags() {
		tagOptions = append(tagOptions, huh.NewOption(t.String(), t.String()))
	}

	var isList, isRagged bool
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Tags").
				Options(tagOptions...).
				Value(&tagValues).
				Height(10),
			huh.NewConfirm().
				Title("Is this a list column?").
				Value(&isList),
		),
	).Run(); err != nil {
		return schema.ColumnSchema{}, err
	}

	if isList {
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Are the lists ragged (variable length)?").
					Value(&isRagged),
			),
		).Run(); err != nil {
			return schema.ColumnSchema{}, err
		}
	}

	opts := []schema.ColumnOption{}
	if len(tagValues) > 0 {
		tags := make([]schema.Tag, len(tagValues))
		for i, v := range tagValues {
			tags[i] = schema.Tag(v)
		}
		opts = append(opts, schema.WithTags(tags...))
	}
	if isRagged {
		opts = append(opts, schema.WithRagged())
	} else if isList {
		opts = append(opts, schema.WithList())
	}

	col, err := schema.NewColumnSchema(name, dtype, opts...)
	if err != nil {
		return schema.ColumnSchema{}, err
	}

	if dtype.Family() == schema.IntFamily || dtype.Family() == schema.FloatFamily {
		col, err = promptDomain(col)
		if err != nil {
			return schema.ColumnSchema{}, err
		}
	}
	if isList {
		col, err = promptValueCount(col)
		if err != nil {
			return schema.ColumnSchema{}, err
		}
	}

	return col, nil
}

func promptDomain(col schema.ColumnSchema) (schema.ColumnSchema, error) {
	var addDomain bool
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Add {min, max} domain bounds?").
				Value(&addDomain),
		),
	).Run(); err != nil {
		return col, err
	}
	if !addDomain {
		return col, nil
	}

	var minStr, maxStr string
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Domain min").Placeholder("0").Value(&minStr).Validate(numberValidator),
			huh.NewInput().Title("Domain max").Placeholder("100").Value(&maxStr).Validate(numberValidator),
		),
	).Run(); err != nil {
		return col, err
	}

	min, _ := strconv.ParseFloat(minStr, 64)
	max, _ := strconv.ParseFloat(maxStr, 64)
	return col.WithDomain(min, max), nil
}

func promptValueCount(col schema.ColumnSchema) (schema.ColumnSchema, error) {
	var addBounds bool
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Bound the list length with {min, max}?").
				Value(&addBounds),
		),
	).Run(); err != nil {
		return col, err
	}
	if !addBounds {
		return col, nil
	}

	var minStr, maxStr string
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Min length").Placeholder("1").Value(&minStr).Validate(integerValidator),
			huh.NewInput().Title("Max length").Placeholder("10").Value(&maxStr).Validate(integerValidator),
		),
	).Run(); err != nil {
		return col, err
	}

	min, _ := strconv.ParseInt(minStr, 10, 64)
	max, _ := strconv.ParseInt(maxStr, 10, 64)
	return col.WithValueCount(min, max), nil
}

func numberValidator(s string) error {
	if s == "" {
		return errors.New("a value is required")
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return errors.New("must be a number")
	}
	return nil
}

func integerValidator(s string) error {
	if s == "" {
		return errors.New("a value is required")
	}
	if _, err := strconv.ParseInt(s, 10, 64); err != nil {
		return errors.New("must be an integer")
	}
	return nil
}
