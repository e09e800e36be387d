package utils

// Condexpr 条件表达式
func Condexpr[T any](condition bool, trueValue, falseValue T) T {
	if condition {
		return trueValue
	}
	return falseValue
}
