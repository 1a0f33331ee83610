package log

import (
	"context"
	"encoding/json"
	"reflect"
)

// PrintArray writes arr as JSON when asJSON is set and as a field listing
// otherwise.
func PrintArray[K any](ctx context.Context, arr []K, asJSON bool, fieldNameReplacements map[string]string) error {
	if !asJSON {
		PrettyPrintArray(ctx, arr, fieldNameReplacements)
		return nil
	}

	if arr == nil {
		arr = []K{}
	}

	data, err := json.Marshal(arr)
	if err != nil {
		return err
	}
	From(ctx).PrintlnUnstyled(string(data))

	return nil
}

// PrintValue is PrintArray for a single value.
func PrintValue(ctx context.Context, value interface{}, asJSON bool, fieldNameReplacements map[string]string) error {
	l := From(ctx)

	if !asJSON {
		l.Println("--------------------------------------")
		PrettyPrint(ctx, value, fieldNameReplacements)
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	l.PrintlnUnstyled(string(data))

	return nil
}

func PrettyPrintArray[K any](ctx context.Context, arr []K, fieldNameReplacements map[string]string) {
	l := From(ctx)

	if len(arr) == 0 {
		l.Println("NO RESULTS")
		return
	}

	l.Println("--------------------------------------")
	for _, item := range arr {
		PrettyPrint(ctx, item, fieldNameReplacements)
		l.Println("--------------------------------------")
	}
}

func PrettyPrint(ctx context.Context, value interface{}, fieldNameReplacements map[string]string) {
	l := From(ctx)

	refVal := reflect.ValueOf(value)

	if refVal.Kind() == reflect.Ptr {
		refVal = refVal.Elem()
	}

	if refVal.Kind() != reflect.Struct {
		l.PrintlnUnstyled(value)
		return
	}

	for i := 0; i < refVal.NumField(); i++ {
		field := refVal.Type().Field(i)
		if !field.IsExported() {
			continue
		}

		fieldName := field.Name
		val := refVal.Field(i)

		if field.Type.Kind() == reflect.Ptr {
			if val.IsNil() {
				continue
			}
			val = val.Elem()
		}

		value := val.Interface()

		switch val.Type().Kind() {
		case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
			if _, ok := value.(interface{ String() string }); !ok {
				data, _ := json.Marshal(value)
				value = string(data)
			}
		}

		if fieldNameReplacements != nil {
			if replacement, ok := fieldNameReplacements[fieldName]; ok {
				fieldName = replacement
			}
		}

		l.Printf("%s: %v", fieldName, value)
	}
}
