package device

import (
	"fmt"
	"hash/fnv"
	"unsafe"

	"github.com/notargets/gocca"
)

// blockSize is the @inner extent of every generated kernel.
const blockSize = 256

// Replacement values travel in a small device-side params buffer of the
// element type rather than as kernel scalars, so the kernel ABI is the
// same for all eight element types: memory handles plus the int length.

func kernelBody(guarded string) string {
	return fmt.Sprintf(`	for (int block = 0; block < (n + %d) / %d; ++block; @outer) {
		for (int tid = 0; tid < %d; ++tid; @inner) {
			const int i = block * %d + tid;
			if (i < n) {
%s
			}
		}
	}`, blockSize-1, blockSize, blockSize, blockSize, guarded)
}

func replaceName(dt DataType) string {
	return "replace_" + dt.String()
}

func replaceSource(dt DataType) string {
	ct := dt.CTypeName()
	body := kernelBody(`				if (data[i] == params[0]) {
					data[i] = params[1];
				}`)
	return fmt.Sprintf("@kernel void %s(%s *data, const int n, const %s *params) {\n%s\n}\n",
		replaceName(dt), ct, ct, body)
}

func replaceCopyName(dt DataType) string {
	return "replace_copy_" + dt.String()
}

func replaceCopySource(dt DataType) string {
	ct := dt.CTypeName()
	body := kernelBody(`				dst[i] = (src[i] == params[0]) ? params[1] : src[i];`)
	return fmt.Sprintf("@kernel void %s(%s *dst, const %s *src, const int n, const %s *params) {\n%s\n}\n",
		replaceCopyName(dt), ct, ct, ct, body)
}

// exprTag gives predicate-expression kernels a distinct, C-safe name.
func exprTag(expr string) string {
	h := fnv.New32a()
	h.Write([]byte(expr))
	return fmt.Sprintf("%08x", h.Sum32())
}

func replaceIfName(dt DataType, expr string, stencil bool) string {
	if stencil {
		return fmt.Sprintf("replace_if_st_%s_%s", dt.String(), exprTag(expr))
	}
	return fmt.Sprintf("replace_if_%s_%s", dt.String(), exprTag(expr))
}

func replaceIfSource(dt DataType, expr string, stencil bool) string {
	ct := dt.CTypeName()
	name := replaceIfName(dt, expr, stencil)
	probe := "data[i]"
	stencilArg := ""
	if stencil {
		probe = "stencil[i]"
		stencilArg = fmt.Sprintf("const %s *stencil, ", ct)
	}
	body := kernelBody(fmt.Sprintf(`				const %s x = %s;
				if (%s) {
					data[i] = params[0];
				}`, ct, probe, expr))
	return fmt.Sprintf("@kernel void %s(%s *data, %sconst int n, const %s *params) {\n%s\n}\n",
		name, ct, stencilArg, ct, body)
}

func replaceCopyIfName(dt DataType, expr string, stencil bool) string {
	if stencil {
		return fmt.Sprintf("replace_copy_if_st_%s_%s", dt.String(), exprTag(expr))
	}
	return fmt.Sprintf("replace_copy_if_%s_%s", dt.String(), exprTag(expr))
}

func replaceCopyIfSource(dt DataType, expr string, stencil bool) string {
	ct := dt.CTypeName()
	name := replaceCopyIfName(dt, expr, stencil)
	probe := "src[i]"
	stencilArg := ""
	if stencil {
		probe = "stencil[i]"
		stencilArg = fmt.Sprintf("const %s *stencil, ", ct)
	}
	body := kernelBody(fmt.Sprintf(`				const %s x = %s;
				dst[i] = (%s) ? params[0] : src[i];`, ct, probe, expr))
	return fmt.Sprintf("@kernel void %s(%s *dst, const %s *src, %sconst int n, const %s *params) {\n%s\n}\n",
		name, ct, ct, stencilArg, ct, body)
}

// params copies count elements of dt starting at src into a fresh
// device buffer. The caller frees it after the kernel has finished.
func (e *Engine) params(dt DataType, src unsafe.Pointer, count int64) *gocca.OCCAMemory {
	return e.Malloc(dt.Size()*count, src)
}

// RunReplace overwrites elements of data equal to oldNew[0] with
// oldNew[1]. oldNew points at two consecutive elements of dt.
func (e *Engine) RunReplace(dt DataType, data *gocca.OCCAMemory, n int, oldNew unsafe.Pointer) error {
	if n == 0 {
		return nil
	}
	k, err := e.kernel(replaceName(dt), func() string { return replaceSource(dt) })
	if err != nil {
		return err
	}
	p := e.params(dt, oldNew, 2)
	defer p.Free()
	if err := k.RunWithArgs(data, n, p); err != nil {
		return fmt.Errorf("replace kernel failed: %w", err)
	}
	e.dev.Finish()
	return nil
}

// RunReplaceCopy copies src into dst substituting oldNew[0] with
// oldNew[1]. dst may be the same memory as src.
func (e *Engine) RunReplaceCopy(dt DataType, dst, src *gocca.OCCAMemory, n int, oldNew unsafe.Pointer) error {
	if n == 0 {
		return nil
	}
	k, err := e.kernel(replaceCopyName(dt), func() string { return replaceCopySource(dt) })
	if err != nil {
		return err
	}
	p := e.params(dt, oldNew, 2)
	defer p.Free()
	if err := k.RunWithArgs(dst, src, n, p); err != nil {
		return fmt.Errorf("replace_copy kernel failed: %w", err)
	}
	e.dev.Finish()
	return nil
}

// RunReplaceIf overwrites elements for which expr holds with the
// element at newValue. expr is an OKL boolean expression over x, the
// element under test.
func (e *Engine) RunReplaceIf(dt DataType, data *gocca.OCCAMemory, n int, expr string, newValue unsafe.Pointer) error {
	if n == 0 {
		return nil
	}
	k, err := e.kernel(replaceIfName(dt, expr, false),
		func() string { return replaceIfSource(dt, expr, false) })
	if err != nil {
		return err
	}
	p := e.params(dt, newValue, 1)
	defer p.Free()
	if err := k.RunWithArgs(data, n, p); err != nil {
		return fmt.Errorf("replace_if kernel failed: %w", err)
	}
	e.dev.Finish()
	return nil
}

// RunReplaceIfStencil is RunReplaceIf with expr evaluated against the
// stencil elements instead of the data elements.
func (e *Engine) RunReplaceIfStencil(dt DataType, data, stencil *gocca.OCCAMemory, n int, expr string, newValue unsafe.Pointer) error {
	if n == 0 {
		return nil
	}
	k, err := e.kernel(replaceIfName(dt, expr, true),
		func() string { return replaceIfSource(dt, expr, true) })
	if err != nil {
		return err
	}
	p := e.params(dt, newValue, 1)
	defer p.Free()
	if err := k.RunWithArgs(data, stencil, n, p); err != nil {
		return fmt.Errorf("replace_if stencil kernel failed: %w", err)
	}
	e.dev.Finish()
	return nil
}

// RunReplaceCopyIf copies src into dst substituting elements for which
// expr holds with the element at newValue.
func (e *Engine) RunReplaceCopyIf(dt DataType, dst, src *gocca.OCCAMemory, n int, expr string, newValue unsafe.Pointer) error {
	if n == 0 {
		return nil
	}
	k, err := e.kernel(replaceCopyIfName(dt, expr, false),
		func() string { return replaceCopyIfSource(dt, expr, false) })
	if err != nil {
		return err
	}
	p := e.params(dt, newValue, 1)
	defer p.Free()
	if err := k.RunWithArgs(dst, src, n, p); err != nil {
		return fmt.Errorf("replace_copy_if kernel failed: %w", err)
	}
	e.dev.Finish()
	return nil
}

// RunReplaceCopyIfStencil is RunReplaceCopyIf with expr evaluated
// against the stencil elements.
func (e *Engine) RunReplaceCopyIfStencil(dt DataType, dst, src, stencil *gocca.OCCAMemory, n int, expr string, newValue unsafe.Pointer) error {
	if n == 0 {
		return nil
	}
	k, err := e.kernel(replaceCopyIfName(dt, expr, true),
		func() string { return replaceCopyIfSource(dt, expr, true) })
	if err != nil {
		return err
	}
	p := e.params(dt, newValue, 1)
	defer p.Free()
	if err := k.RunWithArgs(dst, src, stencil, n, p); err != nil {
		return fmt.Errorf("replace_copy_if stencil kernel failed: %w", err)
	}
	e.dev.Finish()
	return nil
}
