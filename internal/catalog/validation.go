package catalog

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

type productRules struct {
	Name     string `validate:"required"`
	Price    string `validate:"required,number"`
	Category string `validate:"required"`
}

type validatedInput struct {
	name        string
	price       int64
	category    string
	stock       bool
	description string
	image       string
}

var validate = validator.New()

// ValidateInput checks the required fields of in without touching the store.
// It returns a *ValidationError when any field is rejected.
func ValidateInput(in ProductInput) error {
	_, err := validateInput(in)
	return err
}

func validateInput(in ProductInput) (validatedInput, error) {
	rules := productRules{
		Name:     strings.TrimSpace(in.Name),
		Price:    strings.TrimSpace(in.Price),
		Category: strings.TrimSpace(in.Category),
	}
	fields := make(map[string]string)
	if err := validate.Struct(rules); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return validatedInput{}, err
		}
		for _, fieldErr := range verrs {
			fields[strings.ToLower(fieldErr.Field())] = fieldMessage(fieldErr)
		}
	}
	var price int64
	if _, bad := fields["price"]; !bad {
		parsed, err := strconv.ParseInt(rules.Price, 10, 64)
		if err != nil {
			fields["price"] = "Harga tidak valid"
		}
		price = parsed
	}
	if len(fields) > 0 {
		return validatedInput{}, &ValidationError{Fields: fields}
	}
	return validatedInput{
		name:        rules.Name,
		price:       price,
		category:    rules.Category,
		stock:       in.Stock,
		description: strings.TrimSpace(in.Description),
		image:       strings.TrimSpace(in.Image),
	}, nil
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "Wajib diisi"
	case "number":
		return "Harus berupa angka bulat positif"
	default:
		return fieldErr.Error()
	}
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
