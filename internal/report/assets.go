package report

const pageCSS = `
:root { --ink: #1f2933; --muted: #6b7280; --line: #e5e7eb; --accent: #2196F3; }
* { box-sizing: border-box; }
body { margin: 0; font-family: "Segoe UI", Roboto, Helvetica, Arial, sans-serif; color: var(--ink); background: #f5f7fa; }
.report { max-width: 1100px; margin: 0 auto; padding: 24px; }
.report-header { background: #fff; border-radius: 10px; padding: 20px 24px; margin-bottom: 20px; border-top: 6px solid var(--accent); }
.report-header h1 { margin: 0 0 4px; font-size: 26px; }
.test-meta, .generated, .muted { color: var(--muted); }
.student { font-size: 18px; margin-top: 8px; }
.student-id { color: var(--muted); }
.rank-badge { display: inline-block; margin-left: 10px; padding: 5px 10px; border-radius: 5px; color: #fff; font-weight: bold; background: #607D8B; }
.section { background: #fff; border-radius: 10px; padding: 20px 24px; margin-bottom: 20px; }
.section h2 { margin-top: 0; font-size: 20px; }
.summary-text { font-size: 16px; }
.instructor-note { border-left: 4px solid var(--accent); padding-left: 10px; }
.cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(160px, 1fr)); gap: 12px; }
.card { border: 1px solid var(--line); border-radius: 8px; padding: 12px; display: flex; flex-direction: column; }
.card-label { color: var(--muted); font-size: 13px; }
.card-value { font-size: 20px; font-weight: 600; }
.warnings { border-left: 4px solid #F44336; }
table { width: 100%; border-collapse: collapse; margin: 8px 0 16px; }
th, td { text-align: left; padding: 8px; border-bottom: 1px solid var(--line); }
th { background: #f9fafb; font-weight: 600; }
tr.weak td { background: #fdecea; }
tr.strength td { background: #e8f5e9; }
.swatch { display: inline-block; width: 10px; height: 10px; border-radius: 2px; margin-right: 6px; }
.chart-row { display: flex; flex-wrap: wrap; gap: 16px; }
.chart-container { flex: 1 1 320px; min-height: 280px; }
.no-weakness-text { color: #2e7d32; font-weight: 600; text-align: center; padding-top: 100px; }
.tips li { margin-bottom: 6px; }
.tip-critical { color: #c62828; }
.tip-moderate { color: #ef6c00; }
.tip-maintenance, .tip-general { color: #2e7d32; }
.quote { font-style: italic; color: var(--muted); }
.featured-quote { font-size: 18px; color: var(--ink); }
@media print {
  body { background: #fff; }
  .section, .report-header { break-inside: avoid; border: 1px solid var(--line); }
}
`

const chartJS = `
(function () {
  if (typeof ApexCharts === "undefined") { return; }
  function mount(id, options) {
    var el = document.getElementById(id);
    if (!el) { return; }
    new ApexCharts(el, options).render();
  }
  var pct = function (v) { return v.toFixed(2) + "%"; };
  mount("overallChart", {
    chart: { type: "donut", height: 300 },
    labels: reportCharts.overall.labels,
    series: reportCharts.overall.series,
    colors: ["#4CAF50", "#F44336", "#9E9E9E"],
    title: { text: "Answers" }
  });
  mount("sectionChart", {
    chart: { type: "bar", height: 300 },
    series: [{ name: "Accuracy", data: reportCharts.sections.series }],
    xaxis: { categories: reportCharts.sections.labels },
    yaxis: { max: 100 },
    colors: reportCharts.sections.colors,
    plotOptions: { bar: { distributed: true } },
    dataLabels: { formatter: pct },
    title: { text: "Section accuracy" }
  });
  reportCharts.topics.forEach(function (topic) {
    mount(topic.id, {
      chart: { type: "bar", height: 260 },
      series: [{ name: "Accuracy", data: topic.series }],
      xaxis: { categories: topic.labels },
      yaxis: { max: 100 },
      colors: [topic.color],
      dataLabels: { formatter: pct }
    });
  });
  mount("strengthDonutChart", {
    chart: { type: "donut", height: 280 },
    labels: reportCharts.strengths.labels,
    series: reportCharts.strengths.series,
    title: { text: "Strengths by section" }
  });
  mount("weakDonutChart", {
    chart: { type: "donut", height: 280 },
    labels: reportCharts.weak.labels,
    series: reportCharts.weak.series,
    title: { text: "Weak areas by section" }
  });
  mount("radarChart", {
    chart: { type: "radar", height: 340 },
    series: [
      { name: "Strengths", data: reportCharts.radar.strengths },
      { name: "Weaknesses", data: reportCharts.radar.weaknesses }
    ],
    xaxis: { categories: reportCharts.radar.labels },
    yaxis: { max: 100 },
    colors: ["#4CAF50", "#F44336"]
  });
})();
`
