package webkit

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/bnema/puregotk-webkit/webkit"
	"github.com/jwijenbergh/purego"
	"github.com/jwijenbergh/puregotk/pkg/core"
	gtypes "github.com/jwijenbergh/puregotk/v4/gobject/types"

	"github.com/Zeal1001/casement/internal/logging"
)

// WebKitGTK 6.0 exposes no constructor that takes a network session;
// the session is a construct-only property. Private tabs therefore go
// through g_object_new_with_properties directly, resolved at runtime
// the same way the generated bindings resolve their own symbols.
var webkitLibPaths = []string{
	"libwebkitgtk-6.0.so.4",
	"libwebkitgtk-6.0.so",
}

var (
	loadPrivateViewFnsOnce sync.Once

	newEphemeralNetworkSession func() uintptr
	networkSessionGetType      func() gtypes.GType
	webViewGetType             func() gtypes.GType

	gObjectNewWithProperties func(gtypes.GType, uint32, uintptr, uintptr) uintptr
	gObjectUnref             func(uintptr)
	gValueInit               func(uintptr, gtypes.GType) uintptr
	gValueSetObject          func(uintptr, uintptr)
	gValueUnset              func(uintptr)
)

// gValue mirrors GObject's GValue layout: a GType tag followed by two
// data words. Must be zero-initialized before g_value_init.
type gValue struct {
	gtype gtypes.GType
	data  [2]uint64
}

func loadPrivateViewFns(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	loadPrivateViewFnsOnce.Do(func() {
		log := logging.FromContext(ctx)

		gobjectLibs := make([]uintptr, 0, 2)
		for _, libPath := range core.GetPaths("GOBJECT") {
			lib, err := purego.Dlopen(libPath, purego.RTLD_NOW|purego.RTLD_GLOBAL)
			if err != nil {
				log.Debug().Str("path", libPath).Err(err).Msg("failed to load GObject library")
				continue
			}
			gobjectLibs = append(gobjectLibs, lib)
		}

		webkitLibs := make([]uintptr, 0, 2)
		for _, libPath := range webkitLibPaths {
			lib, err := purego.Dlopen(libPath, purego.RTLD_NOW|purego.RTLD_GLOBAL)
			if err != nil {
				log.Debug().Str("path", libPath).Err(err).Msg("failed to load WebKit library")
				continue
			}
			webkitLibs = append(webkitLibs, lib)
		}

		if len(gobjectLibs) == 0 || len(webkitLibs) == 0 {
			log.Debug().Msg("required libraries not loaded; private webviews unavailable")
			return
		}

		core.PuregoSafeRegister(&newEphemeralNetworkSession, webkitLibs, "webkit_network_session_new_ephemeral")
		core.PuregoSafeRegister(&networkSessionGetType, webkitLibs, "webkit_network_session_get_type")
		core.PuregoSafeRegister(&webViewGetType, webkitLibs, "webkit_web_view_get_type")

		core.PuregoSafeRegister(&gObjectNewWithProperties, gobjectLibs, "g_object_new_with_properties")
		core.PuregoSafeRegister(&gObjectUnref, gobjectLibs, "g_object_unref")
		core.PuregoSafeRegister(&gValueInit, gobjectLibs, "g_value_init")
		core.PuregoSafeRegister(&gValueSetObject, gobjectLibs, "g_value_set_object")
		core.PuregoSafeRegister(&gValueUnset, gobjectLibs, "g_value_unset")
	})
}

func privateViewFnsReady() bool {
	return newEphemeralNetworkSession != nil &&
		networkSessionGetType != nil &&
		webViewGetType != nil &&
		gObjectNewWithProperties != nil &&
		gObjectUnref != nil &&
		gValueInit != nil &&
		gValueSetObject != nil &&
		gValueUnset != nil
}

// newEphemeralWebView constructs a WebView bound to a fresh ephemeral
// network session. The returned session pointer carries the creation
// reference; release it with unrefEphemeralSession once the view is
// destroyed.
func newEphemeralWebView(ctx context.Context) (*webkit.WebView, uintptr, error) {
	loadPrivateViewFns(ctx)
	if !privateViewFnsReady() {
		return nil, 0, fmt.Errorf("ephemeral session helpers unavailable")
	}

	session := newEphemeralNetworkSession()
	if session == 0 {
		return nil, 0, fmt.Errorf("failed to create ephemeral network session")
	}

	propName := []byte("network-session\x00")
	names := []uintptr{uintptr(unsafe.Pointer(&propName[0]))}

	var value gValue
	gValueInit(uintptr(unsafe.Pointer(&value)), networkSessionGetType())
	gValueSetObject(uintptr(unsafe.Pointer(&value)), session)

	viewPtr := gObjectNewWithProperties(webViewGetType(), 1, uintptr(unsafe.Pointer(&names[0])), uintptr(unsafe.Pointer(&value)))
	gValueUnset(uintptr(unsafe.Pointer(&value)))
	runtime.KeepAlive(propName)
	runtime.KeepAlive(names)
	runtime.KeepAlive(&value)

	if viewPtr == 0 {
		gObjectUnref(session)
		return nil, 0, fmt.Errorf("failed to construct private webview")
	}

	return webkit.WebViewNewFromInternalPtr(viewPtr), session, nil
}

// unrefEphemeralSession drops the creation reference to a session
// returned by newEphemeralWebView.
func unrefEphemeralSession(session uintptr) {
	if session == 0 || gObjectUnref == nil {
		return
	}
	gObjectUnref(session)
}
