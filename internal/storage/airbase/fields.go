package airbase

// Хелперы чтения полей записи. Стор отдаёт rollup/linked-поля массивами,
// числа — float64. Отсутствие поля всегда деградирует до нулевого значения.

func (r *Record) Str(field string) string {
	if v, ok := r.Fields[field].(string); ok {
		return v
	}
	return ""
}

// StrPtr: nil, если поле отсутствует или пустое.
func (r *Record) StrPtr(field string) *string {
	if v, ok := r.Fields[field].(string); ok && v != "" {
		return &v
	}
	return nil
}

// FirstStr — первый элемент поля-массива (linked/rollup), иначе "".
func (r *Record) FirstStr(field string) string {
	if arr, ok := r.Fields[field].([]any); ok && len(arr) > 0 {
		if v, ok := arr[0].(string); ok {
			return v
		}
	}
	return ""
}

func (r *Record) FirstStrPtr(field string) *string {
	if v := r.FirstStr(field); v != "" {
		return &v
	}
	return nil
}

func (r *Record) Num(field string) float64 {
	if v, ok := r.Fields[field].(float64); ok {
		return v
	}
	return 0
}

func (r *Record) NumPtr(field string) *float64 {
	if v, ok := r.Fields[field].(float64); ok {
		return &v
	}
	return nil
}

func (r *Record) IntPtr(field string) *int {
	if v, ok := r.Fields[field].(float64); ok {
		n := int(v)
		return &n
	}
	return nil
}

func (r *Record) FirstNum(field string) float64 {
	if arr, ok := r.Fields[field].([]any); ok && len(arr) > 0 {
		if v, ok := arr[0].(float64); ok {
			return v
		}
	}
	return 0
}

func (r *Record) Bool(field string) bool {
	if v, ok := r.Fields[field].(bool); ok {
		return v
	}
	return false
}

func (r *Record) StrSlice(field string) []string {
	arr, ok := r.Fields[field].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, it := range arr {
		if v, ok := it.(string); ok {
			out = append(out, v)
		}
	}
	return out
}
