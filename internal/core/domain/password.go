package domain

const minPasswordLength = 8

// Password is a validated plaintext password. It exists only on the
// signup/login call path; stores hold PasswordHash, never this.
type Password struct {
	value string
}

// ParsePassword validates raw and returns it wrapped. The only rule is a
// minimum length of 8; there is no upper bound and no character-class
// requirement.
func ParsePassword(raw string) (Password, error) {
	if len(raw) < minPasswordLength {
		return Password{}, ErrInvalidPassword
	}
	return Password{value: raw}, nil
}

func (p Password) String() string {
	return p.value
}
