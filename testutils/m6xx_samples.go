package testutils

var (
	// SampleCodeM601 - memory still owned at the end of the unit
	SampleCodeM601 = []CodeSample{
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *a = malloc(4);
  int *b = malloc(4);
}
`}, 1, nil},
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *a = malloc(4);
  int *b = malloc(4);
}
`}, 2, withGlobal("leak-report", "all")},
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *a = malloc(4);
  int *b = calloc(1, 4);
  free(b);
  free(a);
}
`}, 0, nil},
	}

	// SampleCodeM602 - memory state unknown at the end of the unit
	SampleCodeM602 = []CodeSample{
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  int *q = realloc(p, 8);
  free(q);
}
`}, 1, withGlobal("realloc-invalidates-source", "true")},
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  int *q = realloc(p, 8);
  free(q);
  free(p);
}
`}, 0, nil},
	}
)
