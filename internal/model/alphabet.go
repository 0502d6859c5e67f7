package model

// Alphabet lists every character key that can be typed.
func Alphabet() []rune {
	chars := make([]rune, 0, 128)
	for r := 'a'; r <= 'z'; r++ {
		chars = append(chars, r)
	}
	for r := 'A'; r <= 'Z'; r++ {
		chars = append(chars, r)
	}
	chars = append(chars, []rune(" ,.:\"-@;<>+_()=*/¡!¿?#$%&°'^~[]{}")...)
	for r := '0'; r <= '9'; r++ {
		chars = append(chars, r)
	}
	chars = append(chars, []rune("áÁéÉíÍóÓúÚäÄëËïÏöÖüÜçñÑ")...)
	return chars
}

var typeable = func() map[rune]struct{} {
	set := make(map[rune]struct{})
	for _, r := range Alphabet() {
		set[r] = struct{}{}
	}
	return set
}()

// Typeable reports whether every rune of s has a key in the Alphabet.
func Typeable(s string) bool {
	for _, r := range s {
		if _, ok := typeable[r]; !ok {
			return false
		}
	}
	return true
}
