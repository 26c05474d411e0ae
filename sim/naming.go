package sim

import (
	"fmt"
	"strings"
)

// NameMustBeValid panics if the name does not follow the naming convention.
//
// A name is a dot-separated hierarchy such as "SDRAM.InflightFIFO". Every
// element starts with a capital letter, must not be empty, and may carry
// square-bracket indices such as "Bank[2]".
func NameMustBeValid(name string) {
	if err := checkName(name); err != nil {
		panic(fmt.Sprintf("name %q is not valid: %s", name, err))
	}
}

func checkName(name string) error {
	for _, elem := range strings.Split(name, ".") {
		if err := checkNameElement(elem); err != nil {
			return err
		}
	}

	return nil
}

func checkNameElement(elem string) error {
	if elem == "" {
		return fmt.Errorf("empty element")
	}

	if strings.ContainsAny(elem, "_\"'- ") {
		return fmt.Errorf("element %q has an invalid character", elem)
	}

	if elem[0] < 'A' || elem[0] > 'Z' {
		return fmt.Errorf("element %q must start with a capital letter", elem)
	}

	depth := 0

	for _, c := range elem {
		switch c {
		case '[':
			depth++
		case ']':
			depth--
		}

		if depth < 0 || depth > 1 {
			return fmt.Errorf("element %q has unmatched brackets", elem)
		}
	}

	if depth != 0 {
		return fmt.Errorf("element %q has unmatched brackets", elem)
	}

	return nil
}

// BuildName builds a name from a parent name and an element name.
func BuildName(parentName, elementName string) string {
	if parentName == "" {
		return elementName
	}

	return parentName + "." + elementName
}

// BuildNameWithIndex builds a name from a parent name, an element name and an
// index.
func BuildNameWithIndex(parentName, elementName string, index int) string {
	return BuildName(parentName, fmt.Sprintf("%s[%d]", elementName, index))
}
