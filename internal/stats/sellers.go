package stats

// CountCreditedSellers returns how many commercials share the credit of a sale
func CountCreditedSellers(s Sale) int {
	n := len(s.AdditionalSellers)
	if s.PrimarySellerID != 0 {
		n++
	}
	return n
}

// IsMultiSeller reports whether the sale is a binôme, credited to two or
// more commercials
func IsMultiSeller(s Sale) bool {
	return CountCreditedSellers(s) > 1
}

// countCredit is the count point of a sale. A binôme shares a single point.
func countCredit(s Sale) float64 {
	if IsMultiSeller(s) {
		return 0.5
	}
	return 1
}

// CreditsUser reports whether the user is credited on the sale
func (s Sale) CreditsUser(userID uint) bool {
	if userID == 0 {
		return false
	}
	if s.PrimarySellerID == userID {
		return true
	}
	for _, seller := range s.AdditionalSellers {
		if seller.UserID == userID {
			return true
		}
	}
	return false
}
