package testutils

import "github.com/securego/memcheck"

var (
	// SampleCodeM101 - allocation not assigned to a variable
	SampleCodeM101 = []CodeSample{
		{[]string{`
#include <stdlib.h>

void f(void) {
  malloc(10);
}
`}, 1, nil},
		{[]string{`
#include <stdlib.h>

void f(void) {
  calloc(1, 4);
  malloc(2);
}
`}, 2, nil},
		{[]string{`
#include <stdlib.h>

struct node {
  int *data;
};

void f(struct node *n) {
  n->data = malloc(sizeof(int));
}
`}, 1, nil},
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  int *q;
  q = (int *)calloc(2, sizeof(int));
  free(p);
  free(q);
}
`}, 0, nil},
	}

	// SampleCodeM102 - reallocation not assigned to a variable
	SampleCodeM102 = []CodeSample{
		{[]string{`
#include <stdlib.h>

void f(int *p) {
  realloc(p, 8);
}
`}, 1, nil},
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  int *q = realloc(p, 8);
  free(q);
}
`}, 0, nil},
	}

	// SampleCodeM103 - realloc of something that is not a variable
	SampleCodeM103 = []CodeSample{
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *q = realloc(NULL, 8);
  free(q);
}
`}, 1, nil},
		{[]string{`
#include <stdlib.h>

void f(int **pp) {
  int *q = realloc(*pp, 8);
  free(q);
}
`}, 1, nil},
	}

	// SampleCodeM104 - reallocation into the variable being reallocated
	SampleCodeM104 = []CodeSample{
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  p = realloc(p, 8);
  free(p);
}
`}, 1, nil},
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  int *tmp = realloc(p, 8);
  if (tmp == NULL) {
    free(p);
    return;
  }
  free(tmp);
}
`}, 0, nil},
	}

	// SampleCodeM105 - reallocation into a variable that still owns memory
	SampleCodeM105 = []CodeSample{
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  int *q = (q = malloc(4), realloc(p, 8));
}
`}, 1, nil},
		{[]string{`
#include <stdlib.h>

void f(void) {
  int *p = malloc(4);
  int *q = malloc(4);
  free(q);
  q = realloc(p, 8);
  free(q);
}
`}, 0, memcheck.NewConfig()},
	}
)
