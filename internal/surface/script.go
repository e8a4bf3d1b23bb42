package surface

import (
	"encoding/json"
	"fmt"

	"github.com/dgallion1/pagewise/internal/bridge"
)

// runtimeJS installs window.__pagewise once per document. It is safe to
// evaluate repeatedly: the listeners are registered only on first install.
const runtimeJS = `(function() {
  var themes = %s;
  if (!window.__pagewise) {
    var post = function(msg) {
      var data = JSON.stringify(msg);
      if (window.ReactNativeWebView) {
        window.ReactNativeWebView.postMessage(data);
      } else if (window.parent && window.parent !== window) {
        window.parent.postMessage(data, "*");
      }
    };
    var applyTheme = function(dark) {
      var style = document.getElementById(%q);
      if (!style) {
        style = document.createElement("style");
        style.id = %q;
        document.head.appendChild(style);
      }
      style.textContent = dark ? themes.dark : themes.light;
    };
    var highlight = function() {
      var sel = window.getSelection();
      if (!sel || sel.rangeCount === 0 || sel.isCollapsed) {
        return;
      }
      var range = sel.getRangeAt(0);
      var span = document.createElement("span");
      span.className = %q;
      try {
        range.surroundContents(span);
      } catch (e) {
        span.appendChild(range.extractContents());
        range.insertNode(span);
      }
      sel.removeAllRanges();
    };
    var clearSelection = function() {
      var sel = window.getSelection && window.getSelection();
      if (sel && sel.removeAllRanges) {
        sel.removeAllRanges();
      }
    };
    window.__pagewise = {
      receive: function(cmd) {
        switch (cmd && cmd.kind) {
        case "theme": applyTheme(!!cmd.dark); break;
        case "highlight": highlight(); break;
        case "clear-selection": clearSelection(); break;
        }
      }
    };
    document.addEventListener("contextmenu", function(e) { e.preventDefault(); });
    document.addEventListener("selectionchange", function() {
      var sel = window.getSelection();
      var text = sel ? sel.toString() : "";
      if (text.length === 0 || sel.rangeCount === 0) {
        return;
      }
      var rect = sel.getRangeAt(0).getBoundingClientRect();
      post({kind: "selection", text: text, x: rect.left + rect.width / 2, y: rect.top});
    });
  }
})();
`

// Bootstrap returns the script injected after every load-end: it installs
// the surface runtime if missing and applies the theme.
func Bootstrap(theme Theme) (string, error) {
	themes, err := json.Marshal(map[string]string{
		"dark":  Theme{Dark: true}.CSS(),
		"light": Theme{Dark: false}.CSS(),
	})
	if err != nil {
		return "", fmt.Errorf("encode themes: %w", err)
	}
	apply, err := bridge.Theme(theme.Dark).Script()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(runtimeJS, themes, themeStyleID, themeStyleID, highlightClass) + apply, nil
}
