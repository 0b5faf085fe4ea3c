package mrz

var weights = [3]int{7, 3, 1}

// CheckDigit computes the ICAO 9303 check digit of a field.
func CheckDigit(field string) byte {
	sum := 0
	for i := 0; i < len(field); i++ {
		sum += charValue(field[i]) * weights[i%3]
	}
	return byte('0' + sum%10)
}

func charValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default:
		return 0
	}
}

func checks(field string, digit byte) bool {
	if digit == '<' {
		digit = '0'
	}
	return CheckDigit(field) == digit
}
