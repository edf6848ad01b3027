package testutils

var (
	// SampleCodeM401 - aliasing a pointer that still owns memory
	SampleCodeM401 = []CodeSample{
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  int *q;
  q = p;
  free(p);
}
`}, 1, nil},
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  char *c;
  c = p;
  free(p);
}
`}, 0, nil},
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  int *q;
  free(p);
  q = p;
}
`}, 0, nil},
	}

	// SampleCodeM402 - overwriting a variable that still owns memory
	SampleCodeM402 = []CodeSample{
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  p = malloc(8);
  free(p);
}
`}, 1, nil},
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  p = NULL;
}
`}, 1, nil},
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  free(p);
  p = NULL;
}
`}, 0, nil},
	}

	// SampleCodeM403 - overwriting a variable in unknown state
	SampleCodeM403 = []CodeSample{
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  int *q = realloc(p, 8);
  p = NULL;
  free(q);
}
`}, 1, withGlobal("realloc-invalidates-source", "true")},
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  int *q = realloc(p, 8);
  free(p);
  p = NULL;
  free(q);
}
`}, 0, nil},
	}
)
