package httpapi

import "html/template"

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>docshelf</title></head>
<body>
{{if .Flash}}<p class="flash">{{.Flash}}</p>{{end}}
<h1>docshelf</h1>
<h2>Login</h2>
<form method="post" action="/login">
  <input name="key" placeholder="key" required>
  <input name="password" type="password" placeholder="password" required>
  <button type="submit">Login</button>
</form>
<h2>Signup</h2>
<form method="post" action="/signup">
  <input name="key" placeholder="key" required>
  <input name="password" type="password" placeholder="password" required>
  <input name="confirmPassword" type="password" placeholder="confirm password" required>
  <button type="submit">Signup</button>
</form>
</body>
</html>
`))

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head><title>docshelf - dashboard</title></head>
<body>
{{if .Flash}}<p class="flash">{{.Flash}}</p>{{end}}
<h1>Welcome, {{.User}}</h1>
<form method="post" action="/upload" enctype="multipart/form-data">
  <input type="file" name="file" required>
  <button type="submit">Upload</button>
</form>
<h2>Your documents</h2>
<ul>
{{range .Documents}}
  <li>
    <a href="/view/{{.}}">{{.}}</a>
    <form method="post" action="/delete/{{.}}" style="display:inline">
      <button type="submit">Delete</button>
    </form>
  </li>
{{else}}
  <li>No documents yet.</li>
{{end}}
</ul>
<p><a href="/logout">Logout</a></p>
</body>
</html>
`))

type indexData struct {
	Flash string
}

type dashboardData struct {
	Flash     string
	User      string
	Documents []string
}
