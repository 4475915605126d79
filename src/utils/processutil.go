package utils

import (
	"github.com/go-gota/gota/dataframe"
)

func Contains[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// HasColumn reports whether the DataFrame carries a column with that name.
func HasColumn(df dataframe.DataFrame, name string) bool {
	return Contains(df.Names(), name)
}
