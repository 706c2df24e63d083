package util

import "fmt"

// FormatPhoneNumber renders 11-digit North American numbers as "+1 (AAA) BBB-CCCC".
// Any other input is returned unchanged.
func FormatPhoneNumber(phone string) string {
	digits := make([]byte, 0, len(phone))
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			digits = append(digits, phone[i])
		}
	}
	if len(digits) == 11 && digits[0] == '1' {
		return fmt.Sprintf("+1 (%s) %s-%s", digits[1:4], digits[4:7], digits[7:11])
	}
	return phone
}
