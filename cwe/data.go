package cwe

var data = map[string]*Weakness{
	"401": {
		ID:          "401",
		Description: "The product does not sufficiently track and release allocated memory after it has been used, which slowly consumes remaining memory.",
		Name:        "Missing Release of Memory after Effective Lifetime",
	},
	"415": {
		ID:          "415",
		Description: "The product calls free() twice on the same memory address, potentially leading to modification of unexpected memory locations.",
		Name:        "Double Free",
	},
	"416": {
		ID:          "416",
		Description: "Referencing memory after it has been freed can cause a program to crash, use unexpected values, or execute code.",
		Name:        "Use After Free",
	},
	"763": {
		ID:          "763",
		Description: "The product attempts to return a memory resource to the system, but it calls a release function that is not compatible with the function that was originally used to allocate that resource.",
		Name:        "Release of Invalid Pointer or Reference",
	},
	"824": {
		ID:          "824",
		Description: "The program accesses or uses a pointer that has not been initialized.",
		Name:        "Access of Uninitialized Pointer",
	},
	"825": {
		ID:          "825",
		Description: "The program dereferences a pointer that contains a location for memory that was previously valid, but is no longer valid.",
		Name:        "Expired Pointer Dereference",
	},
	"1341": {
		ID:          "1341",
		Description: "The product attempts to close or release a resource or handle more than once, without any successful open between the close operations.",
		Name:        "Multiple Releases of Same Resource or Handle",
	},
}

// Get Retrieves a CWE weakness by it's id
func Get(id string) *Weakness {
	weakness, ok := data[id]
	if ok && weakness != nil {
		return weakness
	}
	return nil
}
