package testutils

var (
	// SampleCodeParseFail provides a file that won't parse.
	SampleCodeParseFail = []CodeSample{
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4)
  free(p);
}
`}, 1, nil},
	}

	// SampleCodeMultipleFiles provides two independent units: one leaks,
	// the other is clean.
	SampleCodeMultipleFiles = []CodeSample{
		{[]string{`
#include <stdlib.h>

void leak(void) {
  char *buf = calloc(16, 1);
}
`, `
#include <stdlib.h>

void clean(void) {
  char *buf = calloc(16, 1);
  free(buf);
}
`}, 1, nil},
	}
)
