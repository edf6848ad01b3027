package testutils

var (
	// SampleCodeM501 - returning a pointer that still owns memory
	SampleCodeM501 = []CodeSample{
		{[]string{`
#include <stdlib.h>

int *f(void) {
  int *p = malloc(4);
  return p;
}
`}, 1, nil},
		{[]string{`
#include <stdlib.h>

int *f(void) {
  int *p = malloc(4);
  return (p);
}
`}, 1, nil},
		{[]string{`
#include <stdlib.h>

int f(int x) {
  int *p = malloc(4);
  free(p);
  return x;
}
`}, 0, nil},
	}

	// SampleCodeM502 - returning a dangling pointer
	SampleCodeM502 = []CodeSample{
		{[]string{`
#include <stdlib.h>

int *f(void) {
  int *p = malloc(4);
  free(p);
  return p;
}
`}, 1, nil},
	}

	// SampleCodeM503 - returning a pointer in unknown state
	SampleCodeM503 = []CodeSample{
		{[]string{`
#include <stdlib.h>

int *f(void) {
  int *p = malloc(4);
  int *q = realloc(p, 8);
  free(q);
  return p;
}
`}, 1, withGlobal("realloc-invalidates-source", "true")},
		{[]string{`
int *f(int *p) {
  return p;
}
`}, 0, nil},
	}
)
