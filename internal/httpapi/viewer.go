package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/wagnerlima/glyco-studio/internal/models"
)

const viewerScript = "https://3Dmol.org/build/3Dmol-min.js"

// ViewerPage renders a stored structure in a 3Dmol.js cartoon viewer.
// Chains are coloured by the spectrum scheme.
func ViewerPage(campaign string, d *models.Design) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		// json.Marshal escapes <, > and & so the text is inert inside <script>.
		data, err := json.Marshal(d.Output)
		if err != nil {
			return err
		}
		title := d.Name
		if title == "" {
			title = d.Kind
		}
		_, err = fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<script src="%s"></script>
<style>
body { margin: 0; font-family: sans-serif; }
header { padding: 8px 12px; background: #1e2a38; color: #fff; }
#viewer { position: relative; width: 100%%; height: calc(100vh - 48px); }
</style>
</head>
<body>
<header>%s / %s <small>(%s, %s)</small></header>
<div id="viewer"></div>
<script>
const model = %s;
const viewer = $3Dmol.createViewer("viewer", { backgroundColor: "white" });
viewer.addModel(model, %q);
viewer.setStyle({}, { cartoon: { color: "spectrum" } });
viewer.zoomTo();
viewer.render();
</script>
</body>
</html>
`,
			templ.EscapeString(title),
			viewerScript,
			templ.EscapeString(campaign),
			templ.EscapeString(title),
			templ.EscapeString(d.Kind),
			templ.EscapeString(d.CreatedAt),
			data,
			d.Format,
		)
		return err
	})
}
