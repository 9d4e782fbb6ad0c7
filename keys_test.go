package obscured_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/obscured"
)

func TestObscureKeys(t *testing.T) {
	record := map[string]any{
		"username": "john",
		"password": "secret",
		"email":    "j@x.com",
	}

	t.Run("named field is wrapped", func(t *testing.T) {
		result := obscured.ObscureKeys(record, "password")

		gt.V(t, result["username"]).Equal("john")
		gt.V(t, result["email"]).Equal("j@x.com")
		gt.B(t, obscured.IsObscured(result["password"])).True()
		gt.V(t, result["password"].(*obscured.Obscured[any]).String()).Equal(obscured.Placeholder)

		v, ok := obscured.Value(result["password"])
		gt.B(t, ok).True()
		gt.V(t, v).Equal("secret")

		raw, err := json.Marshal(result)
		gt.NoError(t, err)
		gt.V(t, string(raw)).Equal(`{"email":"j@x.com","password":"[OBSCURED]","username":"john"}`)
	})

	t.Run("source record is not mutated", func(t *testing.T) {
		_ = obscured.ObscureKeys(record, "password", "email")
		gt.V(t, record["password"]).Equal("secret")
		gt.V(t, record["email"]).Equal("j@x.com")
		gt.V(t, len(record)).Equal(3)
	})

	t.Run("no keys copies every field", func(t *testing.T) {
		result := obscured.ObscureKeys(record)
		gt.V(t, result).Equal(record)
		for k := range result {
			gt.B(t, obscured.IsObscured(result[k])).False()
		}
	})

	t.Run("absent keys are ignored", func(t *testing.T) {
		result := obscured.ObscureKeys(record, "token", "password", "password")
		gt.V(t, len(result)).Equal(3)
		_, exists := result["token"]
		gt.B(t, exists).False()
		gt.B(t, obscured.IsObscured(result["password"])).True()
	})

	t.Run("structured value round trip", func(t *testing.T) {
		config := map[string]any{
			"db": map[string]any{
				"host":     "localhost",
				"password": "hunter2",
				"ports":    []int{5432, 5433},
			},
		}
		result := obscured.ObscureKeys(map[string]any{"name": "app", "config": config}, "config")

		v, ok := obscured.Value(result["config"])
		gt.B(t, ok).True()
		gt.V(t, v).Equal(any(config))

		raw, err := json.Marshal(result)
		gt.NoError(t, err)
		gt.S(t, string(raw)).NotContains("hunter2")
	})

	t.Run("typed record", func(t *testing.T) {
		headers := map[string]string{
			"Authorization": "Bearer abcd1234",
			"Accept":        "application/json",
		}
		result := obscured.ObscureKeys(headers, "Authorization")

		c := gt.Cast[*obscured.Obscured[string]](t, result["Authorization"])
		v, ok := obscured.ValueOf(c)
		gt.B(t, ok).True()
		gt.V(t, v).Equal("Bearer abcd1234")
		gt.V(t, result["Accept"]).Equal("application/json")
	})

	t.Run("nil record", func(t *testing.T) {
		result := obscured.ObscureKeys[string](nil, "password")
		gt.V(t, result).NotNil()
		gt.V(t, len(result)).Equal(0)
	})
}

func TestObscureFields(t *testing.T) {
	type user struct {
		Name     string
		Password string
		Roles    []string
		age      int
	}
	u := user{Name: "john", Password: "secret", Roles: []string{"admin"}, age: 30}

	t.Run("struct", func(t *testing.T) {
		result, err := obscured.ObscureFields(u, "Password", "Roles", "Missing")
		gt.NoError(t, err)

		gt.V(t, len(result)).Equal(3)
		gt.V(t, result["Name"]).Equal("john")
		_, hasAge := result["age"]
		gt.B(t, hasAge).False()

		v, ok := obscured.Value(result["Password"])
		gt.B(t, ok).True()
		gt.V(t, v).Equal("secret")

		roles, ok := obscured.Value(result["Roles"])
		gt.B(t, ok).True()
		gt.V(t, roles).Equal(any([]string{"admin"}))

		gt.V(t, u.Password).Equal("secret")
	})

	t.Run("pointer to struct", func(t *testing.T) {
		result, err := obscured.ObscureFields(&u, "Password")
		gt.NoError(t, err)
		gt.B(t, obscured.IsObscured(result["Password"])).True()
		gt.V(t, result["Name"]).Equal("john")
	})

	t.Run("map with string keys", func(t *testing.T) {
		type secretName string
		src := map[secretName]int{"pin": 1234, "count": 3}
		result, err := obscured.ObscureFields(src, "pin")
		gt.NoError(t, err)

		v, ok := obscured.Value(result["pin"])
		gt.B(t, ok).True()
		gt.V(t, v).Equal(any(1234))
		gt.V(t, result["count"]).Equal(any(3))
	})

	t.Run("unsupported record", func(t *testing.T) {
		var nilUser *user
		for _, record := range []any{nil, 42, "text", []string{"a"}, map[int]string{1: "a"}, nilUser} {
			result, err := obscured.ObscureFields(record, "a")
			gt.V(t, result).Nil()
			gt.B(t, errors.Is(err, obscured.ErrInvalidRecord)).True()
		}
	})
}
