package testutils

var (
	// SampleCodeM301 - write through freed memory
	SampleCodeM301 = []CodeSample{
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  free(p);
  *p = 1;
}
`}, 1, nil},
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4 * sizeof(int));
  free(p);
  p[2] = 1;
}
`}, 1, nil},
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  *p = 1;
  p[0] = 2;
  free(p);
}
`}, 0, nil},
	}

	// SampleCodeM302 - write through memory in unknown state
	SampleCodeM302 = []CodeSample{
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  int *q = realloc(p, 8);
  *p = 1;
  free(q);
}
`}, 1, withGlobal("realloc-invalidates-source", "true")},
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  int *q = realloc(p, 8);
  *p = 1;
  free(q);
}
`}, 0, nil},
	}

	// SampleCodeM303 - write through a pointer with no tracked allocation
	SampleCodeM303 = []CodeSample{
		{[]string{`
void f(int *p) {
  *p = 1;
}
`}, 1, nil},
		{[]string{`
void f(void) {
  int buf[4];
  buf[0] = 1;
}
`}, 1, nil},
	}
)
