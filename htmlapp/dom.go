//go:build js && wasm

package htmlapp

import (
	"errors"
	"syscall/js"
)

var errRejected = errors.New("promise rejected")

// await blocks until a promise settles. It must not be called from a js.FuncOf callback, since the promise can only
// settle once the callback has returned control to JavaScript.
func await(v js.Value) (js.Value, error) {
	if v.Type() != js.TypeObject || v.Get("then").Type() != js.TypeFunction {
		return v, nil
	}

	var result js.Value
	var err error
	done := make(chan struct{})
	onResolve := js.FuncOf(func(this js.Value, args []js.Value) any {
		result = args[0]
		close(done)
		return nil
	})
	defer onResolve.Release()
	onReject := js.FuncOf(func(this js.Value, args []js.Value) any {
		err = errRejected
		if 0 < len(args) && args[0].Truthy() {
			err = errors.New(args[0].Call("toString").String())
		}
		close(done)
		return nil
	})
	defer onReject.Release()

	v.Call("then", onResolve, onReject)
	<-done
	return result, err
}

// bytesOf awaits a promise resolving to an ArrayBuffer, such as Blob.arrayBuffer or Response.arrayBuffer.
func bytesOf(promise js.Value) ([]byte, error) {
	buf, err := await(promise)
	if err != nil {
		return nil, err
	}
	return toBytes(buf), nil
}

// toBytes copies an ArrayBuffer.
func toBytes(buf js.Value) []byte {
	arr := js.Global().Get("Uint8Array").New(buf)
	b := make([]byte, arr.Get("length").Int())
	js.CopyBytesToGo(b, arr)
	return b
}

// blobURL returns an object URL for data, to be revoked by the caller.
func blobURL(data []byte, mimetype string) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(arr, data)
	parts := js.Global().Get("Array").New(arr)
	opts := js.Global().Get("Object").New()
	opts.Set("type", mimetype)
	blob := js.Global().Get("Blob").New(parts, opts)
	return js.Global().Get("URL").Call("createObjectURL", blob)
}

// download saves data under filename through a temporary anchor.
func download(doc js.Value, data []byte, filename, mimetype string) {
	url := blobURL(data, mimetype)
	a := doc.Call("createElement", "a")
	a.Set("download", filename)
	a.Set("href", url)
	doc.Get("body").Call("appendChild", a)
	a.Call("click")
	a.Call("remove")
	js.Global().Get("URL").Call("revokeObjectURL", url)
}

func alert(msg string) {
	if msg != "" {
		js.Global().Call("alert", msg)
	}
}

func setText(el js.Value, s string) {
	if el.Truthy() {
		el.Set("textContent", s)
	}
}

func setDisplay(el js.Value, visible bool) {
	if !el.Truthy() {
		return
	} else if visible {
		el.Get("style").Set("display", "")
	} else {
		el.Get("style").Set("display", "none")
	}
}

// dataset returns the data-action and data-id of the closest element carrying an action.
func dataset(target js.Value) (string, string, bool) {
	el := actionElement(target)
	if !el.Truthy() {
		return "", "", false
	}
	data := el.Get("dataset")
	return data.Get("action").String(), data.Get("id").String(), true
}

// actionElement returns the closest element with a data-action attribute, or null.
func actionElement(target js.Value) js.Value {
	if !target.Truthy() || target.Get("closest").Type() != js.TypeFunction {
		return js.Null()
	}
	return target.Call("closest", "[data-action]")
}

// element is a DOM input or button as a Control.
type element struct {
	js.Value
}

// control returns v as a Control, or nil if v is null or undefined.
func control(v js.Value) Control {
	if !v.Truthy() {
		return nil
	}
	return element{v}
}

func (el element) SetDisabled(disabled bool) {
	el.Set("disabled", disabled)
}
