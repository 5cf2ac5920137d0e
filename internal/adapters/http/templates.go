package web

import "html/template"

// Pages share one layout; each page contributes a "content" block.
// The markup is deliberately plain: the console is an internal tool.
const layoutHTML = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} - Liderança</title>
</head>
<body>
{{if .Email}}
<nav>
  <a href="/">Painel</a>
  <a href="/membros">Membros</a>
  <a href="/celulas">Células</a>
  <a href="/lideres">Líderes</a>
  <a href="/ministerios">Ministérios</a>
  <a href="/estudos">Estudos</a>
  <a href="/avisos">Avisos</a>
  <a href="/palavra">Palavra</a>
  <a href="/louvor">Louvor</a>
  <a href="/aniversariantes">Aniversariantes</a>
  <a href="/relatorios">Relatórios</a>
  <form method="post" action="/logout" class="inline">{{.CSRFField}}<button type="submit">Sair ({{.Email}})</button></form>
</nav>
{{end}}
{{with .Notification}}
<div class="notification {{.Kind}}" role="status">
  <strong>{{.Title}}</strong> {{.Message}}
  <form method="post" action="/notificacao/fechar" class="inline">{{$.CSRFField}}<button type="submit">×</button></form>
</div>
{{end}}
<main>
{{template "content" .}}
</main>
</body>
</html>`

func mustPage(name, contentHTML string) *template.Template {
	t := template.Must(template.New(name).Parse(layoutHTML))
	return template.Must(t.New("content").Parse(contentHTML))
}

var loginTemplate = mustPage("login", `
<h1>Entrar</h1>
{{with .Content}}{{with .Error}}<p class="error">{{.}}</p>{{end}}{{end}}
<form method="post" action="/login">
  {{.CSRFField}}
  <label>E-mail <input type="email" name="email" required></label>
  <label>Senha <input type="password" name="password" required></label>
  <button type="submit">Entrar</button>
</form>`)

var homeTemplate = mustPage("home", `
<h1>Painel</h1>
{{with .Content}}
{{if .Birthdays}}
<section>
  <h2>Aniversariantes de hoje</h2>
  <ul>
  {{range .Birthdays}}<li>{{.Name}} ({{.Type}} - {{.Origin}})</li>{{end}}
  </ul>
</section>
{{end}}
{{if .HasWord}}
<section>
  <h2>{{.WordTheme}}</h2>
  <div>{{.WordHTML}}</div>
</section>
{{end}}
{{end}}`)

var listTemplate = mustPage("list", `
{{with .Content}}
<h1>{{.Resource.Title}}</h1>
<p><a href="/{{.Resource.Path}}/novo">Novo registro</a></p>
{{if .Filters}}
<form method="get" action="/{{.Resource.Path}}">
  <select name="{{if eq .Resource.Path "membros"}}celula{{else}}ministerio{{end}}">
  {{$filter := .Filter}}
  {{range .Filters}}<option value="{{.Value}}"{{if eq .Value $filter}} selected{{end}}>{{.Label}}</option>{{end}}
  </select>
  <button type="submit">Filtrar</button>
</form>
{{end}}
{{with .Pending}}
<div class="confirm">
  <p>Excluir este registro?</p>
  <form method="post" action="/excluir/confirmar" class="inline">{{$.CSRFField}}<button type="submit">Excluir</button></form>
  <form method="post" action="/excluir/cancelar" class="inline">{{$.CSRFField}}<button type="submit">Cancelar</button></form>
</div>
{{end}}
<table>
  <thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}<th></th></tr></thead>
  <tbody>
  {{$res := .Resource}}
  {{range .Rows}}
  <tr>
    {{range .Cells}}<td>{{.}}</td>{{end}}
    <td>
      <a href="/{{$res.Path}}/ver/{{.ID}}">Ver</a>
      <a href="/{{$res.Path}}/editar/{{.ID}}">Editar</a>
      <form method="post" action="/{{$res.Path}}/excluir" class="inline">
        {{$.CSRFField}}<input type="hidden" name="id" value="{{.ID}}"><button type="submit">Excluir</button>
      </form>
    </td>
  </tr>
  {{end}}
  </tbody>
</table>
{{end}}`)

var formTemplate = mustPage("form", `
{{with .Content}}
<h1>{{.Resource.Title}}</h1>
<form method="post" action="/{{.Resource.Path}}/salvar"{{if .IsStudy}} enctype="multipart/form-data"{{end}}>
  {{$.CSRFField}}
  {{$v := .Values}}
  {{range .Resource.Fields}}
  <label>{{.}}
    {{if or (eq . "content") (eq . "description") (eq . "summary")}}
    <textarea name="{{.}}">{{index $v .}}</textarea>
    {{else}}
    <input type="text" name="{{.}}" value="{{index $v .}}">
    {{end}}
  </label>
  {{end}}
  {{if .IsStudy}}
  <label>PDF do roteiro <input type="file" name="pdf" accept="application/pdf"></label>
  {{end}}
  <button type="submit">Salvar</button>
</form>
{{if .IsWord}}
<form method="post" action="/palavra/gerar">
  {{$.CSRFField}}
  <input type="hidden" name="id" value="{{.ID}}">
  <input type="hidden" name="date" value="{{index .Values "date"}}">
  <label>Tema <input type="text" name="theme" value="{{index .Values "theme"}}"></label>
  <button type="submit">Gerar com IA</button>
</form>
<form method="post" action="/boletim/enviar" class="inline">{{$.CSRFField}}<button type="submit">Enviar boletim</button></form>
{{end}}
{{if .IsStudy}}
<form method="post" action="/estudos/expandir">
  {{$.CSRFField}}
  <input type="hidden" name="id" value="{{.ID}}">
  <input type="hidden" name="title" value="{{index .Values "title"}}">
  <input type="hidden" name="reference" value="{{index .Values "reference"}}">
  <input type="hidden" name="suggestedPraise" value="{{index .Values "suggestedPraise"}}">
  <input type="hidden" name="date" value="{{index .Values "date"}}">
  <button type="submit">Expandir estudo com IA</button>
</form>
{{end}}
<form method="post" action="/editar/cancelar" class="inline">{{$.CSRFField}}<button type="submit">Cancelar</button></form>
{{end}}`)

var birthdaysTemplate = mustPage("birthdays", `
{{with .Content}}
<h1>Aniversariantes de {{.Month}}</h1>
<table>
  <thead><tr><th>Dia</th><th>Nome</th><th>Tipo</th><th>Origem</th><th>Contato</th></tr></thead>
  <tbody>
  {{range .Entries}}
  <tr{{if .Today}} class="today"{{end}}>
    <td>{{.Day}}</td><td>{{.Name}}</td><td>{{.Type}}</td><td>{{.Origin}}</td>
    <td>{{if .WhatsApp}}<a href="{{.WhatsApp}}">WhatsApp</a>{{end}}</td>
  </tr>
  {{end}}
  </tbody>
</table>
{{end}}`)

var reportsTemplate = mustPage("reports", `
<h1>Relatórios</h1>
<ul>
  <li><a href="/relatorios/csv?tipo=membros">Membros (CSV)</a></li>
  <li><a href="/relatorios/csv?tipo=lideres">Líderes (CSV)</a></li>
  <li><a href="/relatorios/csv?tipo=celulas">Células (CSV)</a></li>
  <li><a href="/relatorios/csv?tipo=ministerios">Ministérios (CSV)</a></li>
  <li><a href="/relatorios/csv?tipo=avisos">Avisos (CSV)</a></li>
</ul>
<p><a href="/relatorios/imprimir">Versão para impressão</a></p>`)

var viewTemplate = mustPage("view", `
{{with .Content}}
<h1>{{.Resource.Title}}</h1>
<dl>
{{range .Fields}}
  <dt>{{.Name}}</dt>
  <dd>{{if .HTML}}{{.HTML}}{{else}}{{.Text}}{{end}}</dd>
{{end}}
</dl>
<p>
  <a href="/{{.Resource.Path}}/editar/{{.ID}}">Editar</a>
  <a href="/{{.Resource.Path}}">Voltar</a>
</p>
{{end}}`)

var printTemplate = mustPage("print", `
{{with .Content}}
<h1>Relatório Geral - {{.Date}}</h1>
{{range .Sections}}
<section>
  <h2>{{.Resource.Title}}</h2>
  <table>
    <thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
    <tbody>
    {{range .Rows}}<tr>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>{{end}}
    </tbody>
  </table>
</section>
{{end}}
<script>window.print()</script>
{{end}}`)
