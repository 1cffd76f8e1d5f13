package service

// levenshtein is the plain insert/delete/substitute edit distance, one DP row reused.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	al, bl := len(ra), len(rb)
	if al == 0 {
		return bl
	}
	if bl == 0 {
		return al
	}

	row := make([]int, bl+1)
	for j := 0; j <= bl; j++ {
		row[j] = j
	}
	for i := 1; i <= al; i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= bl; j++ {
			up := row[j]
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			// delete / insert / substitute
			row[j] = min(up+1, row[j-1]+1, diag+cost)
			diag = up
		}
	}
	return row[bl]
}
