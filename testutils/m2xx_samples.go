package testutils

var (
	// SampleCodeM201 - double free
	SampleCodeM201 = []CodeSample{
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  free(p);
  free(p);
}
`}, 1, nil},
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  free(p);
  p = malloc(4);
  free(p);
}
`}, 0, nil},
	}

	// SampleCodeM202 - free of a pointer in unknown state
	SampleCodeM202 = []CodeSample{
		{[]string{`
#include <stdlib.h>

void f(int *p) {
  free(p);
}
`}, 1, nil},
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  int *q = realloc(p, 8);
  free(p);
  free(q);
}
`}, 1, withGlobal("realloc-invalidates-source", "true")},
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  int *q = realloc(p, 8);
  free(q);
}
`}, 0, withGlobal("realloc-invalidates-source", "true")},
	}

	// SampleCodeM203 - free of something that is not a variable
	SampleCodeM203 = []CodeSample{
		{[]string{`
#include <stdlib.h>

void f(int **pp) {
  free(*pp);
}
`}, 1, nil},
		{[]string{`
#include <stdlib.h>

struct node {
  int *data;
};

void f(struct node n) {
  free(n.data);
  free(NULL);
}
`}, 2, nil},
	}
)
